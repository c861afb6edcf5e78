package domain

import (
	"errors"
	"time"
)

// RoleHost is the only role handed out at registration.
const RoleHost = "host"

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// User models a registered account. Email is the lookup key.
type User struct {
	ID           string    `json:"id" bson:"user_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
