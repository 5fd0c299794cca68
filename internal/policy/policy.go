// Package policy is the single place where lifecycle transitions and
// visibility rules are decided. Every mutating service path consults it;
// handlers and repositories never encode transition legality themselves.
package policy

import (
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/domain/job"
)

type Role string

const (
	RoleStudent  Role = "student"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// Actor identifies who is requesting a transition. It is always taken from
// the authenticated session, never from the request body.
type Actor struct {
	ID   common.UUID
	Role Role
}

var (
	ErrNotOwner                    = common.NewError(common.CodeForbidden, "actor does not own this resource", nil)
	ErrInvalidTransition           = common.NewError(common.CodeValidation, "status transition is not allowed", nil)
	ErrJobNotAcceptingApplications = common.NewError(common.CodeValidation, "job is not accepting applications", nil)
	ErrDuplicateApplication        = common.NewError(common.CodeConflict, "student has already applied to this job", nil)
)

// allowed names who may perform a given transition. Owner means the owning
// employer for jobs, the owning student or parent-job employer for
// applications, depending on the table entry.
type allowed struct {
	Owner  bool
	Admin  bool
	System bool
}

type transition[S comparable] struct {
	From S
	To   S
}

var jobTransitions = map[transition[job.Status]]allowed{
	{job.StatusActive, job.StatusFilled}:   {Owner: true, Admin: true},
	{job.StatusActive, job.StatusArchived}: {Owner: true, Admin: true},
	{job.StatusActive, job.StatusExpired}:  {System: true},
	{job.StatusArchived, job.StatusActive}: {Admin: true},
	{job.StatusArchived, job.StatusFilled}: {Admin: true},
}

// CanTransitionJob decides whether actor may move j to the given status.
// Removal is allowed from any state, admin only.
func CanTransitionJob(actor Actor, j job.Job, to job.Status) error {
	if to == job.StatusRemoved {
		if actor.Role != RoleAdmin {
			return ErrNotOwner
		}
		return nil
	}
	rule, ok := jobTransitions[transition[job.Status]{j.Status, to}]
	if !ok {
		return ErrInvalidTransition
	}
	if rule.System {
		// Time-based expiry belongs to the sweep, not to any actor.
		return ErrInvalidTransition
	}
	if actor.Role == RoleAdmin && rule.Admin {
		return nil
	}
	if rule.Owner && actor.Role == RoleEmployer {
		if actor.ID != j.EmployerID {
			return ErrNotOwner
		}
		return nil
	}
	return ErrNotOwner
}

var applicationTransitions = map[transition[application.Status]]allowed{
	{application.StatusPending, application.StatusContacted}: {Owner: true, Admin: true},
	{application.StatusPending, application.StatusRejected}:  {Owner: true, Admin: true},
	{application.StatusPending, application.StatusWithdrawn}: {Owner: true},
}

// CanTransitionApplication decides whether actor may move app to the given
// status. Contacted and rejected belong to the employer owning the parent
// job, withdrawn to the applying student, cancelled to admins from any state.
func CanTransitionApplication(actor Actor, app application.Application, parent job.Job, to application.Status) error {
	if to == application.StatusCancelled {
		if actor.Role != RoleAdmin {
			return ErrNotOwner
		}
		return nil
	}
	rule, ok := applicationTransitions[transition[application.Status]{app.Status, to}]
	if !ok {
		return ErrInvalidTransition
	}
	if actor.Role == RoleAdmin && rule.Admin {
		return nil
	}
	if !rule.Owner {
		return ErrNotOwner
	}
	switch to {
	case application.StatusWithdrawn:
		if actor.Role != RoleStudent || actor.ID != app.StudentID {
			return ErrNotOwner
		}
	default:
		if actor.Role != RoleEmployer || actor.ID != parent.EmployerID {
			return ErrNotOwner
		}
	}
	return nil
}

// CanApply decides whether actor may create an application against j.
// Eligibility depends on the stored status and the expiry clock: a job past
// its window is closed even if the sweep has not flipped it yet.
func CanApply(actor Actor, j job.Job, now time.Time) error {
	if actor.Role != RoleStudent {
		return ErrNotOwner
	}
	if j.Status != job.StatusActive || j.Expired(now) {
		return ErrJobNotAcceptingApplications
	}
	return nil
}

// VisibleInListings reports whether j appears in default browse results.
// Expired jobs are excluded regardless of stored status but stay reachable
// by direct ID lookup.
func VisibleInListings(j job.Job, now time.Time) bool {
	return j.Status == job.StatusActive && !j.Expired(now)
}

// ListingLess is the browse ordering: sponsored jobs before the rest, newest
// first within each tier. Repositories mirror it in SQL so pagination holds.
func ListingLess(a, b job.Job) bool {
	if a.Sponsored != b.Sponsored {
		return a.Sponsored
	}
	return a.PostedAt.After(b.PostedAt)
}

// CanRevealContact reports whether actor may read the contact fields of j.
// Owners and admins always can; students need a contact grant, which the
// caller resolves from storage.
func CanRevealContact(actor Actor, j job.Job, hasGrant bool) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleEmployer:
		return actor.ID == j.EmployerID
	case RoleStudent:
		return hasGrant
	default:
		return false
	}
}
