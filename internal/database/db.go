package database

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    _ "github.com/go-sql-driver/mysql"
)

// Pool sizing for the clinic workload: a handful of front-desk terminals
// plus the consulting rooms.  Idle connections stay low so a quiet
// overnight clinic does not pin MySQL resources.
const (
    maxOpenConns    = 15
    maxIdleConns    = 5
    connMaxLifetime = 30 * time.Minute
    pingTimeout     = 5 * time.Second
)

// Open connects to MySQL and verifies the connection.  Every timestamp
// column round-trips as time.Time in UTC; the repositories depend on
// parseTime and loc staying in the DSN.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
    auth := user
    if pass != "" {
        auth = fmt.Sprintf("%s:%s", user, pass)
    }
    dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC&multiStatements=false",
        auth, host, port, name)

    db, err := sql.Open("mysql", dsn)
    if err != nil {
        return nil, err
    }

    db.SetMaxOpenConns(maxOpenConns)
    db.SetMaxIdleConns(maxIdleConns)
    db.SetConnMaxLifetime(connMaxLifetime)

    ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
    defer cancel()
    if err := db.PingContext(ctx); err != nil {
        db.Close()
        return nil, err
    }
    return db, nil
}
