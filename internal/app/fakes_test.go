package app

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/admin"
	"studentgigs/internal/domain/analytics"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/domain/job"
	"studentgigs/internal/domain/user"
	"studentgigs/internal/policy"
)

type fakeUserRepo struct {
	mu            sync.Mutex
	byID          map[common.UUID]*user.User
	order         []common.UUID
	lastListLimit int

	// Linked repos mirror the schema's ON DELETE CASCADE constraints.
	jobs         *fakeJobRepo
	applications *fakeApplicationRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[common.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, common.NewError(common.CodeConflict, "email already registered", nil)
		}
	}
	u.ID = common.NewUUID()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.byID[u.ID] = &u
	r.order = append(r.order, u.ID)
	copy := u
	return &copy, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[u.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	u.UpdatedAt = time.Now().UTC()
	r.byID[u.ID] = &u
	copy := u
	return &copy, nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id common.UUID, status user.Status) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	u.Status = status
	u.UpdatedAt = time.Now().UTC()
	copy := *u
	return &copy, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	copy := *u
	return &copy, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastListLimit = limit
	var users []user.User
	for _, id := range r.order {
		if u, ok := r.byID[id]; ok {
			users = append(users, *u)
		}
	}
	if offset >= len(users) {
		return nil, nil
	}
	users = users[offset:]
	if limit >= 0 && limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	if _, ok := r.byID[id]; !ok {
		r.mu.Unlock()
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	delete(r.byID, id)
	r.mu.Unlock()
	if r.applications != nil {
		r.applications.deleteByStudent(id)
	}
	if r.jobs != nil {
		for _, jobID := range r.jobs.deleteByEmployer(id) {
			if r.applications != nil {
				r.applications.deleteByJob(jobID)
			}
		}
	}
	return nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	j.UpdatedAt = time.Now().UTC()
	r.byID[j.ID] = &j
	copy := j
	return &copy, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.byID[j.ID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.Status = current.Status
	j.PostedAt = current.PostedAt
	j.UpdatedAt = time.Now().UTC()
	r.byID[j.ID] = &j
	copy := j
	return &copy, nil
}

func (r *fakeJobRepo) UpdateStatus(ctx context.Context, id common.UUID, status job.Status) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.Status = status
	j.UpdatedAt = time.Now().UTC()
	copy := *j
	return &copy, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	copy := *j
	return &copy, nil
}

func (r *fakeJobRepo) ListVisible(ctx context.Context, now time.Time, limit, offset int) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var jobs []job.Job
	for _, j := range r.byID {
		if policy.VisibleInListings(*j, now) {
			jobs = append(jobs, *j)
		}
	}
	sort.SliceStable(jobs, func(i, k int) bool {
		return policy.ListingLess(jobs[i], jobs[k])
	})
	return page(jobs, limit, offset), nil
}

func (r *fakeJobRepo) SearchCategory(ctx context.Context, category string, now time.Time, limit, offset int) ([]job.Job, error) {
	visible, err := r.ListVisible(ctx, now, 0, 0)
	if err != nil {
		return nil, err
	}
	var jobs []job.Job
	needle := strings.ToLower(category)
	for _, j := range visible {
		if strings.Contains(strings.ToLower(j.Category), needle) {
			jobs = append(jobs, j)
		}
	}
	return page(jobs, limit, offset), nil
}

func (r *fakeJobRepo) ListByEmployer(ctx context.Context, employerID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var jobs []job.Job
	for _, j := range r.byID {
		if j.EmployerID == employerID {
			jobs = append(jobs, *j)
		}
	}
	return jobs, nil
}

func (r *fakeJobRepo) ListAll(ctx context.Context, limit, offset int) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var jobs []job.Job
	for _, j := range r.byID {
		jobs = append(jobs, *j)
	}
	return page(jobs, limit, offset), nil
}

func (r *fakeJobRepo) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, j := range r.byID {
		if j.Status == job.StatusActive && j.Expired(now) {
			j.Status = job.StatusExpired
			count++
		}
	}
	return count, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeJobRepo) deleteByEmployer(employerID common.UUID) []common.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []common.UUID
	for id, j := range r.byID {
		if j.EmployerID == employerID {
			delete(r.byID, id)
			ids = append(ids, id)
		}
	}
	return ids
}

func page(jobs []job.Job, limit, offset int) []job.Job {
	if offset >= len(jobs) {
		return nil
	}
	jobs = jobs[offset:]
	if limit > 0 && limit < len(jobs) {
		jobs = jobs[:limit]
	}
	return jobs
}

type applicationKey struct {
	jobID     common.UUID
	studentID common.UUID
}

// fakeApplicationRepo mirrors the transactional contract of the real
// repository: the insert settles duplicates and writes the contact grant in
// the same step.
type fakeApplicationRepo struct {
	mu     sync.Mutex
	byID   map[common.UUID]*application.Application
	byPair map[applicationKey]common.UUID
	grants map[applicationKey]bool
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		byID:   make(map[common.UUID]*application.Application),
		byPair: make(map[applicationKey]common.UUID),
		grants: make(map[applicationKey]bool),
	}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := applicationKey{jobID: app.JobID, studentID: app.StudentID}
	if _, ok := r.byPair[key]; ok {
		return nil, policy.ErrDuplicateApplication
	}
	app.ID = common.NewUUID()
	app.AppliedAt = time.Now().UTC()
	app.UpdatedAt = app.AppliedAt
	r.byID[app.ID] = &app
	r.byPair[key] = app.ID
	r.grants[key] = true
	copy := app
	return &copy, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	app.UpdatedAt = time.Now().UTC()
	copy := *app
	return &copy, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copy := *app
	return &copy, nil
}

func (r *fakeApplicationRepo) FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byPair[applicationKey{jobID: jobID, studentID: studentID}]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copy := *r.byID[id]
	return &copy, nil
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var apps []application.Application
	for _, app := range r.byID {
		if app.StudentID == studentID {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var apps []application.Application
	for _, app := range r.byID {
		if app.JobID == jobID {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (r *fakeApplicationRepo) ListByEmployer(ctx context.Context, employerID common.UUID) ([]application.Application, error) {
	return nil, nil
}

func (r *fakeApplicationRepo) deleteByStudent(studentID common.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, app := range r.byID {
		if app.StudentID == studentID {
			r.remove(id, app)
		}
	}
}

func (r *fakeApplicationRepo) deleteByJob(jobID common.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, app := range r.byID {
		if app.JobID == jobID {
			r.remove(id, app)
		}
	}
}

// remove expects the caller to hold the lock.
func (r *fakeApplicationRepo) remove(id common.UUID, app *application.Application) {
	key := applicationKey{jobID: app.JobID, studentID: app.StudentID}
	delete(r.byID, id)
	delete(r.byPair, key)
	delete(r.grants, key)
}

func (r *fakeApplicationRepo) Has(ctx context.Context, studentID, jobID common.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.grants[applicationKey{jobID: jobID, studentID: studentID}], nil
}

type fakeAdminRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*admin.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byID: make(map[common.UUID]*admin.AdminUser)}
}

func (r *fakeAdminRepo) Create(ctx context.Context, a admin.AdminUser) (*admin.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return nil, common.NewError(common.CodeConflict, "email already registered", nil)
		}
	}
	a.ID = common.NewUUID()
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	r.byID[a.ID] = &a
	copy := a
	return &copy, nil
}

func (r *fakeAdminRepo) Update(ctx context.Context, a admin.AdminUser) (*admin.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "admin not found", nil)
	}
	a.UpdatedAt = time.Now().UTC()
	r.byID[a.ID] = &a
	copy := a
	return &copy, nil
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, id common.UUID) (*admin.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "admin not found", nil)
	}
	copy := *a
	return &copy, nil
}

func (r *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*admin.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			copy := *a
			return &copy, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "admin not found", nil)
}

func (r *fakeAdminRepo) List(ctx context.Context) ([]admin.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var admins []admin.AdminUser
	for _, a := range r.byID {
		admins = append(admins, *a)
	}
	return admins, nil
}

type recordingAnalyticsRepo struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (r *recordingAnalyticsRepo) Create(ctx context.Context, event analytics.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingAnalyticsRepo) CountByName(ctx context.Context, since time.Time) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, event := range r.events {
		counts[event.Name]++
	}
	return counts, nil
}

func (r *recordingAnalyticsRepo) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.events))
	for _, event := range r.events {
		names = append(names, event.Name)
	}
	return names
}

// fakeGate answers the payment check without touching a provider and counts
// how often it was consulted.
type fakeGate struct {
	mu        sync.Mutex
	satisfied bool
	calls     int
}

func (g *fakeGate) IsSatisfied(ctx context.Context, studentID, jobID common.UUID) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.satisfied, nil
}
