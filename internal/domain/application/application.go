package application

import (
	"time"

	"studentgigs/internal/common"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusContacted Status = "contacted"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
	StatusCancelled Status = "cancelled"
)

const MaxMessageLength = 1000

type Application struct {
	ID        common.UUID `json:"id"`
	JobID     common.UUID `json:"job_id"`
	StudentID common.UUID `json:"student_id"`
	Message   string      `json:"message"`
	Status    Status      `json:"status"`
	AppliedAt time.Time   `json:"applied_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
