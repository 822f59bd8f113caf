package model

import "time"

// Role enumerates the closed set of application roles.  Authorization is
// decided from this enum through the capability table in the middleware
// package; handlers never compare raw role strings.
type Role string

// The four roles the clinic recognises.  Values match the `rol` column in
// the users table.
const (
    RoleAdmin        Role = "ADMIN"         // full access, including POS and user management
    RoleReceptionist Role = "RECEPCIONISTA" // front desk: clients, appointments, walk-in queue, sales
    RoleVet          Role = "VETERINARIO"   // medical staff: own agenda and visit records
    RoleClient       Role = "CLIENTE"       // pet owner: own pets and appointments
)

// ParseRole normalises a raw string into a Role.  Unknown values map to
// RoleClient so that a forged or stale claim can never gain privileges.
func ParseRole(s string) Role {
    switch Role(s) {
    case RoleAdmin, RoleReceptionist, RoleVet, RoleClient:
        return Role(s)
    }
    return RoleClient
}

// User represents a row of the `users` table.  Clients authenticate with
// their RUT as username; staff accounts use plain usernames.  Only the
// bcrypt hash of the password is stored.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name (RUT for client accounts).
//  Email        – contact email (may be empty).
//  PasswordHash – bcrypt hashed password.
//  Rol          – role of the account (see Role constants).
//  IsActive     – whether the account may log in.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Username     string    // users.username
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Rol          Role      // users.rol
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each token
// belongs to a user and carries expiry and revocation metadata.  The plain
// token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
