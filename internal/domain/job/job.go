package job

import (
	"time"

	"studentgigs/internal/common"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusFilled   Status = "filled"
	StatusExpired  Status = "expired"
	StatusArchived Status = "archived"
	StatusRemoved  Status = "removed"
)

// VisibilityWindow is how long a job stays open to new applications after
// posting when no explicit expiry is given.
const VisibilityWindow = 30 * 24 * time.Hour

type Job struct {
	ID           common.UUID `json:"id"`
	EmployerID   common.UUID `json:"employer_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Category     string      `json:"category"`
	Location     string      `json:"location"`
	HourlyPay    float64     `json:"hourly_pay"`
	HoursPerWeek int         `json:"hours_per_week"`
	ContactName  string      `json:"contact_name"`
	ContactPhone string      `json:"contact_phone"`
	ContactEmail string      `json:"contact_email"`
	Perks        []string    `json:"perks"`
	Sponsored    bool        `json:"sponsored"`
	Status       Status      `json:"status"`
	PostedAt     time.Time   `json:"posted_at"`
	ExpiresAt    time.Time   `json:"expires_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Expired reports whether the visibility window has passed, regardless of
// the stored status.
func (j Job) Expired(now time.Time) bool {
	return now.After(j.ExpiresAt)
}
