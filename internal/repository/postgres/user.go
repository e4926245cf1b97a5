package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, password_hash, is_staff, is_superuser, is_active,
	organizer_status, organizer_suspended_until, organizer_suspended_at, organizer_suspended_by, COALESCE(organizer_suspension_reason, ''),
	supplier_status, supplier_suspended_until, supplier_suspended_at, supplier_suspended_by, COALESCE(supplier_suspension_reason, ''),
	last_login_at, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var orgUntil, orgAt, supUntil, supAt, lastLogin sql.NullTime
	var orgBy, supBy sql.NullInt32

	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsStaff, &u.IsSuperuser, &u.IsActive,
		&u.Organizer.Status, &orgUntil, &orgAt, &orgBy, &u.Organizer.SuspensionReason,
		&u.Supplier.Status, &supUntil, &supAt, &supBy, &u.Supplier.SuspensionReason,
		&lastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Organizer.SuspendedUntil = nullTimePtr(orgUntil)
	u.Organizer.SuspendedAt = nullTimePtr(orgAt)
	u.Organizer.SuspendedBy = nullInt32Ptr(orgBy)
	u.Supplier.SuspendedUntil = nullTimePtr(supUntil)
	u.Supplier.SuspendedAt = nullTimePtr(supAt)
	u.Supplier.SuspendedBy = nullInt32Ptr(supBy)
	u.LastLoginAt = nullTimePtr(lastLogin)
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, name, password_hash, is_staff, is_superuser, is_active, organizer_status, supplier_status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id, created_at, updated_at`
	if u.Organizer.Status == "" {
		u.Organizer.Status = domain.RoleStatusNone
	}
	if u.Supplier.Status == "" {
		u.Supplier.Status = domain.RoleStatusNone
	}
	return r.db.QueryRowContext(ctx, query,
		u.Email, u.Name, u.PasswordHash, u.IsStaff, u.IsSuperuser, u.IsActive,
		u.Organizer.Status, u.Supplier.Status, time.Now(),
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, name=$2, password_hash=$3, is_staff=$4, is_superuser=$5, is_active=$6,
	          organizer_status=$7, organizer_suspended_until=$8, organizer_suspended_at=$9, organizer_suspended_by=$10, organizer_suspension_reason=$11,
	          supplier_status=$12, supplier_suspended_until=$13, supplier_suspended_at=$14, supplier_suspended_by=$15, supplier_suspension_reason=$16,
	          updated_at=$17 WHERE id=$18`
	_, err := r.db.ExecContext(ctx, query,
		u.Email, u.Name, u.PasswordHash, u.IsStaff, u.IsSuperuser, u.IsActive,
		u.Organizer.Status, u.Organizer.SuspendedUntil, u.Organizer.SuspendedAt, u.Organizer.SuspendedBy, u.Organizer.SuspensionReason,
		u.Supplier.Status, u.Supplier.SuspendedUntil, u.Supplier.SuspendedAt, u.Supplier.SuspendedBy, u.Supplier.SuspensionReason,
		time.Now(), u.ID,
	)
	return err
}

func (r *userRepository) UpdateRoleState(ctx context.Context, userID int32, role domain.Role, state domain.RoleState) error {
	prefix := "organizer"
	if role == domain.RoleSupplier {
		prefix = "supplier"
	}
	query := fmt.Sprintf(`UPDATE users SET %[1]s_status=$1, %[1]s_suspended_until=$2, %[1]s_suspended_at=$3, %[1]s_suspended_by=$4, %[1]s_suspension_reason=$5, updated_at=$6 WHERE id=$7`, prefix)
	_, err := r.db.ExecContext(ctx, query,
		state.Status, state.SuspendedUntil, state.SuspendedAt, state.SuspendedBy, state.SuspensionReason,
		time.Now(), userID,
	)
	return err
}

func (r *userRepository) SetActive(ctx context.Context, userID int32, active bool) error {
	query := `UPDATE users SET is_active=$1, updated_at=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, active, time.Now(), userID)
	return err
}

func (r *userRepository) RecordLogin(ctx context.Context, userID int32, at time.Time) error {
	query := `UPDATE users SET last_login_at=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, at, userID)
	return err
}

// List returns the management view of users. Superusers are excluded
// from the listing so they can never be targeted by role actions.
func (r *userRepository) List(ctx context.Context, filter repository.UserListFilter, page, pageSize int32) ([]domain.User, int32, error) {
	where := `WHERE is_superuser = FALSE`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch filter.Role {
	case "organizer":
		where += ` AND is_staff = TRUE`
	case "supplier":
		where += ` AND supplier_status IN ('active', 'suspended')`
	case "basic":
		where += ` AND is_staff = FALSE AND supplier_status NOT IN ('active', 'suspended')`
	}

	switch filter.Status {
	case "active":
		now := arg(time.Now())
		where += fmt.Sprintf(` AND is_active = TRUE AND (
			(is_staff = TRUE AND (organizer_status = 'active' OR (organizer_status = 'suspended' AND organizer_suspended_until IS NOT NULL AND organizer_suspended_until <= %[1]s)))
			OR (supplier_status = 'active' OR (supplier_status = 'suspended' AND supplier_suspended_until IS NOT NULL AND supplier_suspended_until <= %[1]s))
			OR (is_staff = FALSE AND supplier_status NOT IN ('active', 'suspended')))`, now)
	case "suspended":
		now := arg(time.Now())
		where += fmt.Sprintf(` AND (
			(organizer_status = 'suspended' AND (organizer_suspended_until IS NULL OR organizer_suspended_until > %[1]s))
			OR (supplier_status = 'suspended' AND (supplier_suspended_until IS NULL OR supplier_suspended_until > %[1]s)))`, now)
	case "inactive":
		where += ` AND is_active = FALSE`
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where += fmt.Sprintf(` AND (name ILIKE %[1]s OR email ILIKE %[1]s)`, p)
	}

	var total int32
	countQuery := `SELECT COUNT(*) FROM users ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users ` + where +
		` ORDER BY created_at DESC LIMIT ` + arg(pageSize) + ` OFFSET ` + arg((page-1)*pageSize)

	logger.DatabaseCall("SELECT", "users", "role", filter.Role, "status", filter.Status)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	logger.DatabaseResult("SELECT", int64(len(users)), rows.Err())
	return users, total, rows.Err()
}

func (r *userRepository) CountCreatedBefore(ctx context.Context, t time.Time) (int32, error) {
	return r.countUsers(ctx, `SELECT COUNT(*) FROM users WHERE created_at < $1`, t)
}

func (r *userRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int32, error) {
	return r.countUsers(ctx, `SELECT COUNT(*) FROM users WHERE created_at >= $1 AND created_at < $2`, start, end)
}

func (r *userRepository) CountStaff(ctx context.Context) (int32, error) {
	return r.countUsers(ctx, `SELECT COUNT(*) FROM users WHERE is_staff = TRUE`)
}

func (r *userRepository) CountActiveBetween(ctx context.Context, start, end time.Time) (int32, error) {
	return r.countUsers(ctx, `SELECT COUNT(*) FROM users WHERE last_login_at >= $1 AND last_login_at < $2`, start, end)
}

func (r *userRepository) countUsers(ctx context.Context, query string, args ...any) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *userRepository) SweepExpiredSuspensions(ctx context.Context, now time.Time) (int64, error) {
	var total int64
	for _, prefix := range []string{"organizer", "supplier"} {
		query := fmt.Sprintf(`UPDATE users SET %[1]s_status='active', %[1]s_suspended_until=NULL, %[1]s_suspended_at=NULL, %[1]s_suspended_by=NULL, %[1]s_suspension_reason='', updated_at=$1
		          WHERE %[1]s_status='suspended' AND %[1]s_suspended_until IS NOT NULL AND %[1]s_suspended_until <= $1`, prefix)
		result, err := r.db.ExecContext(ctx, query, now)
		if err != nil {
			return total, err
		}
		affected, _ := result.RowsAffected()
		total += affected
	}
	return total, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if t.Valid {
		v := t.Time
		return &v
	}
	return nil
}

func nullInt32Ptr(i sql.NullInt32) *int32 {
	if i.Valid {
		v := i.Int32
		return &v
	}
	return nil
}
