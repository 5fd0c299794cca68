package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, user_type, first_name, last_name, phone, city,
	institution, organisation, email_verified, phone_verified, status, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u user.User) (*user.User, error) {
	u.ID = common.NewUUID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Status == "" {
		u.Status = user.StatusActive
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		u.ID, u.Email, u.PasswordHash, u.Type, u.FirstName, u.LastName, u.Phone, u.City,
		u.Institution, u.Organisation, u.EmailVerified, u.PhoneVerified, u.Status, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "email already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u user.User) (*user.User, error) {
	u.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `UPDATE users SET email = $1, password_hash = $2, first_name = $3,
		last_name = $4, phone = $5, city = $6, institution = $7, organisation = $8,
		email_verified = $9, phone_verified = $10, updated_at = $11 WHERE id = $12`,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.City, u.Institution,
		u.Organisation, u.EmailVerified, u.PhoneVerified, u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "email already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update user", err)
	}
	return r.GetByID(ctx, u.ID)
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id common.UUID, status user.Status) (*user.User, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update user status", err)
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list users", err)
	}
	defer rows.Close()
	var items []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	return items, nil
}

// Delete removes the user row; owned jobs, applications, and contact grants
// go with it via ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete user", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Type, &u.FirstName, &u.LastName,
		&u.Phone, &u.City, &u.Institution, &u.Organisation, &u.EmailVerified, &u.PhoneVerified,
		&u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load user", err)
	}
	return &u, nil
}
