package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, employer_id, title, description, category, location, hourly_pay,
	hours_per_week, contact_name, contact_phone, contact_email, perks, sponsored, status,
	posted_at, expires_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	j.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (`+jobColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		j.ID, j.EmployerID, j.Title, j.Description, j.Category, j.Location, j.HourlyPay,
		j.HoursPerWeek, j.ContactName, j.ContactPhone, j.ContactEmail, pq.Array(j.Perks),
		j.Sponsored, j.Status, j.PostedAt, j.ExpiresAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	j.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `UPDATE jobs SET title = $1, description = $2, category = $3,
		location = $4, hourly_pay = $5, hours_per_week = $6, contact_name = $7, contact_phone = $8,
		contact_email = $9, perks = $10, sponsored = $11, expires_at = $12, updated_at = $13
		WHERE id = $14`,
		j.Title, j.Description, j.Category, j.Location, j.HourlyPay, j.HoursPerWeek,
		j.ContactName, j.ContactPhone, j.ContactEmail, pq.Array(j.Perks), j.Sponsored,
		j.ExpiresAt, j.UpdatedAt, j.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	return r.GetByID(ctx, j.ID)
}

func (r *JobRepository) UpdateStatus(ctx context.Context, id common.UUID, status job.Status) (*job.Job, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE jobs SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job status", err)
	}
	return r.GetByID(ctx, id)
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) ListVisible(ctx context.Context, now time.Time, limit, offset int) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE status = $1 AND expires_at > $2
		ORDER BY sponsored DESC, posted_at DESC
		LIMIT $3 OFFSET $4`, job.StatusActive, now, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) SearchCategory(ctx context.Context, category string, now time.Time, limit, offset int) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE status = $1 AND expires_at > $2 AND category ILIKE '%' || $3 || '%'
		ORDER BY sponsored DESC, posted_at DESC
		LIMIT $4 OFFSET $5`, job.StatusActive, now, category, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to search jobs", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) ListByEmployer(ctx context.Context, employerID common.UUID) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs
		WHERE employer_id = $1 ORDER BY posted_at DESC`, employerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list employer jobs", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) ListAll(ctx context.Context, limit, offset int) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs
		ORDER BY posted_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	return collectJobs(rows)
}

func (r *JobRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET status = $1, updated_at = $2
		WHERE status = $3 AND expires_at <= $2`, job.StatusExpired, now, job.StatusActive)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to expire jobs", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to expire jobs", err)
	}
	return affected, nil
}

func (r *JobRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return nil
}

func scanJob(row rowScanner) (*job.Job, error) {
	var j job.Job
	if err := row.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.Category, &j.Location,
		&j.HourlyPay, &j.HoursPerWeek, &j.ContactName, &j.ContactPhone, &j.ContactEmail,
		pq.Array(&j.Perks), &j.Sponsored, &j.Status, &j.PostedAt, &j.ExpiresAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &j, nil
}

func collectJobs(rows *sql.Rows) ([]job.Job, error) {
	defer rows.Close()
	var items []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read jobs", err)
	}
	return items, nil
}
