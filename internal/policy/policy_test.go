package policy

import (
	"errors"
	"sort"
	"testing"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/domain/job"
)

var (
	employerID      = common.NewUUID()
	otherEmployerID = common.NewUUID()
	studentID       = common.NewUUID()
	adminID         = common.NewUUID()
)

func testJob(status job.Status) job.Job {
	now := time.Now().UTC()
	return job.Job{
		ID:         common.NewUUID(),
		EmployerID: employerID,
		Status:     status,
		PostedAt:   now,
		ExpiresAt:  now.Add(job.VisibilityWindow),
	}
}

func TestCanTransitionJob(t *testing.T) {
	owner := Actor{ID: employerID, Role: RoleEmployer}
	stranger := Actor{ID: otherEmployerID, Role: RoleEmployer}
	admin := Actor{ID: adminID, Role: RoleAdmin}

	cases := []struct {
		name    string
		actor   Actor
		from    job.Status
		to      job.Status
		wantErr error
	}{
		{"owner fills active", owner, job.StatusActive, job.StatusFilled, nil},
		{"owner archives active", owner, job.StatusActive, job.StatusArchived, nil},
		{"admin fills active", admin, job.StatusActive, job.StatusFilled, nil},
		{"other employer fills active", stranger, job.StatusActive, job.StatusFilled, ErrNotOwner},
		{"owner reopens filled", owner, job.StatusFilled, job.StatusActive, ErrInvalidTransition},
		{"owner reopens archived", owner, job.StatusArchived, job.StatusActive, ErrNotOwner},
		{"admin reopens archived", admin, job.StatusArchived, job.StatusActive, nil},
		{"admin fills archived", admin, job.StatusArchived, job.StatusFilled, nil},
		{"owner expires active", owner, job.StatusActive, job.StatusExpired, ErrInvalidTransition},
		{"admin removes filled", admin, job.StatusFilled, job.StatusRemoved, nil},
		{"admin removes active", admin, job.StatusActive, job.StatusRemoved, nil},
		{"owner removes active", owner, job.StatusActive, job.StatusRemoved, ErrNotOwner},
		{"student fills active", Actor{ID: studentID, Role: RoleStudent}, job.StatusActive, job.StatusFilled, ErrNotOwner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransitionJob(tc.actor, testJob(tc.from), tc.to)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("CanTransitionJob(%s->%s) = %v, want %v", tc.from, tc.to, err, tc.wantErr)
			}
		})
	}
}

func TestCanTransitionApplication(t *testing.T) {
	parent := testJob(job.StatusActive)
	app := application.Application{
		ID:        common.NewUUID(),
		JobID:     parent.ID,
		StudentID: studentID,
		Status:    application.StatusPending,
	}
	owner := Actor{ID: employerID, Role: RoleEmployer}
	stranger := Actor{ID: otherEmployerID, Role: RoleEmployer}
	student := Actor{ID: studentID, Role: RoleStudent}
	otherStudent := Actor{ID: common.NewUUID(), Role: RoleStudent}
	admin := Actor{ID: adminID, Role: RoleAdmin}

	cases := []struct {
		name    string
		actor   Actor
		from    application.Status
		to      application.Status
		wantErr error
	}{
		{"employer contacts pending", owner, application.StatusPending, application.StatusContacted, nil},
		{"employer rejects pending", owner, application.StatusPending, application.StatusRejected, nil},
		{"admin rejects pending", admin, application.StatusPending, application.StatusRejected, nil},
		{"other employer contacts pending", stranger, application.StatusPending, application.StatusContacted, ErrNotOwner},
		{"student withdraws pending", student, application.StatusPending, application.StatusWithdrawn, nil},
		{"other student withdraws pending", otherStudent, application.StatusPending, application.StatusWithdrawn, ErrNotOwner},
		{"employer withdraws pending", owner, application.StatusPending, application.StatusWithdrawn, ErrNotOwner},
		{"employer contacts rejected", owner, application.StatusRejected, application.StatusContacted, ErrInvalidTransition},
		{"student reapplies withdrawn", student, application.StatusWithdrawn, application.StatusPending, ErrInvalidTransition},
		{"admin cancels contacted", admin, application.StatusContacted, application.StatusCancelled, nil},
		{"admin cancels pending", admin, application.StatusPending, application.StatusCancelled, nil},
		{"employer cancels pending", owner, application.StatusPending, application.StatusCancelled, ErrNotOwner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current := app
			current.Status = tc.from
			err := CanTransitionApplication(tc.actor, current, parent, tc.to)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("CanTransitionApplication(%s->%s) = %v, want %v", tc.from, tc.to, err, tc.wantErr)
			}
		})
	}
}

func TestCanApply(t *testing.T) {
	now := time.Now().UTC()
	student := Actor{ID: studentID, Role: RoleStudent}

	open := testJob(job.StatusActive)
	if err := CanApply(student, open, now); err != nil {
		t.Fatalf("CanApply(active) = %v, want nil", err)
	}

	for _, status := range []job.Status{job.StatusFilled, job.StatusExpired, job.StatusArchived, job.StatusRemoved} {
		if err := CanApply(student, testJob(status), now); !errors.Is(err, ErrJobNotAcceptingApplications) {
			t.Fatalf("CanApply(%s) = %v, want ErrJobNotAcceptingApplications", status, err)
		}
	}

	// Stored status still active but the window has passed.
	stale := testJob(job.StatusActive)
	stale.ExpiresAt = now.Add(-time.Hour)
	if err := CanApply(student, stale, now); !errors.Is(err, ErrJobNotAcceptingApplications) {
		t.Fatalf("CanApply(past expiry) = %v, want ErrJobNotAcceptingApplications", err)
	}

	if err := CanApply(Actor{ID: employerID, Role: RoleEmployer}, open, now); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("CanApply(employer) = %v, want ErrNotOwner", err)
	}
}

func TestVisibleInListings(t *testing.T) {
	now := time.Now().UTC()
	visible := testJob(job.StatusActive)
	if !VisibleInListings(visible, now) {
		t.Fatal("active unexpired job should be visible")
	}
	stale := testJob(job.StatusActive)
	stale.ExpiresAt = now.Add(-time.Minute)
	if VisibleInListings(stale, now) {
		t.Fatal("job past expiry must not appear in listings")
	}
	for _, status := range []job.Status{job.StatusFilled, job.StatusExpired, job.StatusArchived, job.StatusRemoved} {
		if VisibleInListings(testJob(status), now) {
			t.Fatalf("%s job must not appear in listings", status)
		}
	}
}

func TestListingLessSponsoredFirst(t *testing.T) {
	base := time.Now().UTC()
	jobs := []job.Job{
		{ID: "a", PostedAt: base.Add(3 * time.Hour)},
		{ID: "b", Sponsored: true, PostedAt: base.Add(1 * time.Hour)},
		{ID: "c", PostedAt: base.Add(4 * time.Hour)},
		{ID: "d", Sponsored: true, PostedAt: base.Add(2 * time.Hour)},
	}
	sort.SliceStable(jobs, func(i, j int) bool { return ListingLess(jobs[i], jobs[j]) })

	got := make([]string, 0, len(jobs))
	for _, j := range jobs {
		got = append(got, j.ID.String())
	}
	want := []string{"d", "b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("listing order = %v, want %v", got, want)
		}
	}
}

func TestCanRevealContact(t *testing.T) {
	j := testJob(job.StatusActive)
	if !CanRevealContact(Actor{ID: employerID, Role: RoleEmployer}, j, false) {
		t.Fatal("owner must see own contact details")
	}
	if CanRevealContact(Actor{ID: otherEmployerID, Role: RoleEmployer}, j, false) {
		t.Fatal("other employers must not see contact details")
	}
	if !CanRevealContact(Actor{ID: adminID, Role: RoleAdmin}, j, false) {
		t.Fatal("admin must see contact details")
	}
	if CanRevealContact(Actor{ID: studentID, Role: RoleStudent}, j, false) {
		t.Fatal("student without grant must not see contact details")
	}
	if !CanRevealContact(Actor{ID: studentID, Role: RoleStudent}, j, true) {
		t.Fatal("granted student must see contact details")
	}
}
