package user

import (
	"time"

	"studentgigs/internal/common"
)

type Type string

const (
	TypeStudent  Type = "student"
	TypeEmployer Type = "employer"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

type User struct {
	ID            common.UUID `json:"id"`
	Email         string      `json:"email"`
	PasswordHash  string      `json:"-"`
	Type          Type        `json:"user_type"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Phone         string      `json:"phone"`
	City          string      `json:"city"`
	Institution   string      `json:"institution,omitempty"`
	Organisation  string      `json:"organisation,omitempty"`
	EmailVerified bool        `json:"email_verified"`
	PhoneVerified bool        `json:"phone_verified"`
	Status        Status      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}
