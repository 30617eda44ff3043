// Package models holds the server-only records: accounts and device tokens.
// The shapes shared with the client live in internal/models.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// DeviceToken binds a push-notification token to the user who registered it.
type DeviceToken struct {
	Token     string    `db:"token"`
	UserID    string    `db:"user_id"`
	UpdatedAt time.Time `db:"updated_at"`
}
