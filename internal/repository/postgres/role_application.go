package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

type roleApplicationRepository struct {
	db *sql.DB
}

func NewRoleApplicationRepository(db *sql.DB) repository.RoleApplicationRepository {
	return &roleApplicationRepository{db: db}
}

const roleApplicationColumns = `id, user_id, role, motivation, experience, status,
	COALESCE(admin_notes, ''), COALESCE(rejection_reason, ''), processed_by, processed_at, created_at`

func scanRoleApplication(row interface{ Scan(...any) error }) (*domain.RoleApplication, error) {
	app := &domain.RoleApplication{}
	var processedBy sql.NullInt32
	var processedAt sql.NullTime
	err := row.Scan(
		&app.ID, &app.UserID, &app.Role, &app.Motivation, &app.Experience, &app.Status,
		&app.AdminNotes, &app.RejectionReason, &processedBy, &processedAt, &app.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.ProcessedBy = nullInt32Ptr(processedBy)
	app.ProcessedAt = nullTimePtr(processedAt)
	return app, nil
}

func (r *roleApplicationRepository) Create(ctx context.Context, app *domain.RoleApplication) error {
	query := `INSERT INTO role_applications (user_id, role, motivation, experience, status)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		app.UserID, app.Role, app.Motivation, app.Experience, app.Status,
	).Scan(&app.ID, &app.CreatedAt)
}

func (r *roleApplicationRepository) GetByID(ctx context.Context, id int32) (*domain.RoleApplication, error) {
	query := `SELECT ` + roleApplicationColumns + ` FROM role_applications WHERE id = $1`
	return scanRoleApplication(r.db.QueryRowContext(ctx, query, id))
}

func (r *roleApplicationRepository) Update(ctx context.Context, app *domain.RoleApplication) error {
	query := `UPDATE role_applications SET status=$1, admin_notes=$2, rejection_reason=$3, processed_by=$4, processed_at=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query,
		app.Status, app.AdminNotes, app.RejectionReason, app.ProcessedBy, app.ProcessedAt, app.ID,
	)
	return err
}

func (r *roleApplicationRepository) List(ctx context.Context, filter repository.ApplicationListFilter, page, pageSize int32) ([]domain.RoleApplication, int32, error) {
	where := `WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		where += ` AND a.status = ` + arg(filter.Status)
	}
	if filter.Role != "" {
		where += ` AND a.role = ` + arg(filter.Role)
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where += fmt.Sprintf(` AND EXISTS (SELECT 1 FROM users u WHERE u.id = a.user_id AND (u.name ILIKE %[1]s OR u.email ILIKE %[1]s))`, p)
	}

	var total int32
	countQuery := `SELECT COUNT(*) FROM role_applications a ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + roleApplicationColumns + ` FROM role_applications a ` + where +
		` ORDER BY a.created_at DESC LIMIT ` + arg(pageSize) + ` OFFSET ` + arg((page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []domain.RoleApplication
	for rows.Next() {
		app, err := scanRoleApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		apps = append(apps, *app)
	}
	return apps, total, rows.Err()
}

func (r *roleApplicationRepository) HasPending(ctx context.Context, userID int32, role domain.Role) (bool, error) {
	return r.exists(ctx, userID, role, `('pending', 'under_review')`)
}

func (r *roleApplicationRepository) HasApproved(ctx context.Context, userID int32, role domain.Role) (bool, error) {
	return r.exists(ctx, userID, role, `('approved')`)
}

func (r *roleApplicationRepository) exists(ctx context.Context, userID int32, role domain.Role, statuses string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM role_applications WHERE user_id = $1 AND role = $2 AND status IN ` + statuses + `)`
	var found bool
	err := r.db.QueryRowContext(ctx, query, userID, role).Scan(&found)
	return found, err
}
