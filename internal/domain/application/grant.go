package application

import (
	"context"
	"time"

	"studentgigs/internal/common"
)

// ContactGrant records that a student has unlocked the contact details of a
// job. Grants are written alongside the application and never revoked, so a
// withdrawn or rejected application keeps its reveal.
type ContactGrant struct {
	JobID     common.UUID `json:"job_id"`
	StudentID common.UUID `json:"student_id"`
	GrantedAt time.Time   `json:"granted_at"`
}

type GrantRepository interface {
	Has(ctx context.Context, studentID, jobID common.UUID) (bool, error)
}
