package model

import "time"

type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusLocked UserStatus = "locked"
)

const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// User is an admin dashboard account.
type User struct {
	Base
	Email            string     `db:"email" json:"email"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	Name             string     `db:"name" json:"name"`
	Role             string     `db:"role" json:"role"`
	Status           UserStatus `db:"status" json:"status"`
	LoginAttempts    int        `db:"login_attempts" json:"-"`
	LastLoginAttempt time.Time  `db:"last_login_attempt" json:"-"`
	LastLoginAt      *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
}
