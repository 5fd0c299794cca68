package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/admin"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

const adminColumns = `id, email, password_hash, name, role, active, created_at, updated_at`

func (r *AdminRepository) Create(ctx context.Context, a admin.AdminUser) (*admin.AdminUser, error) {
	a.ID = common.NewUUID()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO admin_users (`+adminColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Email, a.PasswordHash, a.Name, a.Role, a.Active, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "admin email already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create admin user", err)
	}
	return &a, nil
}

func (r *AdminRepository) Update(ctx context.Context, a admin.AdminUser) (*admin.AdminUser, error) {
	a.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `UPDATE admin_users SET name = $1, role = $2, active = $3,
		password_hash = $4, updated_at = $5 WHERE id = $6`,
		a.Name, a.Role, a.Active, a.PasswordHash, a.UpdatedAt, a.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update admin user", err)
	}
	return r.GetByID(ctx, a.ID)
}

func (r *AdminRepository) GetByID(ctx context.Context, id common.UUID) (*admin.AdminUser, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE id = $1`, id)
	return scanAdmin(row)
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*admin.AdminUser, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admin_users WHERE email = $1`, email)
	return scanAdmin(row)
}

func (r *AdminRepository) List(ctx context.Context) ([]admin.AdminUser, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+adminColumns+` FROM admin_users ORDER BY created_at`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list admin users", err)
	}
	defer rows.Close()
	var items []admin.AdminUser
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	return items, nil
}

func scanAdmin(row rowScanner) (*admin.AdminUser, error) {
	var a admin.AdminUser
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Role, &a.Active,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "admin user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load admin user", err)
	}
	return &a, nil
}
