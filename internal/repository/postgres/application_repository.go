package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/application"
	"studentgigs/internal/policy"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, student_id, message, status, applied_at, updated_at`

// Create inserts the application and its contact grant in one transaction.
// The unique (job_id, student_id) constraint is the authority on duplicates:
// two concurrent applies cannot both pass a pre-check, so no pre-check is
// made.
func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		app.ID, app.JobID, app.StudentID, app.Message, app.Status, app.AppliedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, policy.ErrDuplicateApplication
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}

	// The reveal grant is permanent; later withdrawal or rejection leaves it
	// in place.
	_, err = tx.ExecContext(ctx, `INSERT INTO contact_grants (job_id, student_id, granted_at)
		VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		app.JobID, app.StudentID, now)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to record contact grant", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE job_id = $1 AND student_id = $2`, jobID, studentID)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE student_id = $1 ORDER BY applied_at DESC`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student applications", err)
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE job_id = $1 ORDER BY applied_at DESC`, jobID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job applications", err)
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByEmployer(ctx context.Context, employerID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.job_id, a.student_id, a.message, a.status, a.applied_at, a.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.employer_id = $1
		ORDER BY a.applied_at DESC`, employerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list employer applications", err)
	}
	return collectApplications(rows)
}

// Has implements application.GrantRepository.
func (r *ApplicationRepository) Has(ctx context.Context, studentID, jobID common.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (
		SELECT 1 FROM contact_grants WHERE student_id = $1 AND job_id = $2)`, studentID, jobID).Scan(&exists)
	if err != nil {
		return false, common.NewError(common.CodeInternal, "failed to check contact grant", err)
	}
	return exists, nil
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	if err := row.Scan(&app.ID, &app.JobID, &app.StudentID, &app.Message, &app.Status,
		&app.AppliedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func collectApplications(rows *sql.Rows) ([]application.Application, error) {
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read applications", err)
	}
	return items, nil
}
