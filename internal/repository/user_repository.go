package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/pochitasw/vetclinic/internal/model"
    "github.com/pochitasw/vetclinic/internal/utils"
)

// UserRepo provides access to the 'users' table.  Client accounts use the
// owner's RUT as username; staff accounts use plain usernames.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID.  The password is hashed with
// bcrypt before storage.  Duplicate usernames map to ErrUsernameExists.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, role model.Role, cost int) (uint64, error) {
    username = strings.ToLower(strings.TrimSpace(username))
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return 0, err
    }
    res, err := r.DB.ExecContext(ctx,
        "INSERT INTO users (username, email, password_hash, rol) VALUES (?,?,?,?)",
        username, strings.TrimSpace(email), hash, string(role))
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return 0, ErrUsernameExists
        }
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
    username = strings.ToLower(strings.TrimSpace(username))
    return r.get(ctx, "SELECT id,username,email,password_hash,rol,is_active,created_at,updated_at FROM users WHERE username=? LIMIT 1", username)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
    return r.get(ctx, "SELECT id,username,email,password_hash,rol,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) get(ctx context.Context, query string, arg interface{}) (model.User, error) {
    var (
        u   model.User
        rol string
    )
    err := r.DB.QueryRowContext(ctx, query, arg).Scan(
        &u.ID, &u.Username, &u.Email, &u.PasswordHash, &rol, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return model.User{}, ErrNotFound
    }
    if err != nil {
        return model.User{}, err
    }
    u.Rol = model.ParseRole(rol)
    return u, nil
}

// UpdatePassword replaces the stored bcrypt hash for a user.  Used when a
// client replaces the temporary password handed out at the front desk.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, newPassword string, cost int) error {
    hash, err := utils.HashPassword(newPassword, cost)
    if err != nil {
        return err
    }
    res, err := r.DB.ExecContext(ctx, "UPDATE users SET password_hash=? WHERE id=?", hash, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

// SetActive toggles whether the account may log in.  Deactivation is used
// instead of deletion so that historical records keep their author.
func (r *UserRepo) SetActive(ctx context.Context, id uint64, active bool) error {
    _, err := r.DB.ExecContext(ctx, "UPDATE users SET is_active=? WHERE id=?", active, id)
    return err
}
