package models

import "time"

type User struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:150"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	DateJoined   time.Time  `json:"date_joined"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID   string
	Username string
	AuthMode string
}

const AuthModeJWT = "jwt"
