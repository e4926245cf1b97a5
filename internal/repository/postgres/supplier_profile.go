package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

type supplierProfileRepository struct {
	db *sql.DB
}

func NewSupplierProfileRepository(db *sql.DB) repository.SupplierProfileRepository {
	return &supplierProfileRepository{db: db}
}

const supplierProfileColumns = `id, user_id, slug, company_name, COALESCE(company_description, ''), COALESCE(industry, ''), COALESCE(website, ''), status,
	COALESCE(application_reason, ''), COALESCE(admin_notes, ''), COALESCE(rejection_reason, ''), reviewed_by, approved_at,
	is_public, created_at, updated_at`

func scanSupplierProfile(row interface{ Scan(...any) error }) (*domain.SupplierProfile, error) {
	p := &domain.SupplierProfile{}
	var reviewedBy sql.NullInt32
	var approvedAt sql.NullTime
	err := row.Scan(
		&p.ID, &p.UserID, &p.Slug, &p.CompanyName, &p.CompanyDescription, &p.Industry, &p.Website, &p.Status,
		&p.ApplicationReason, &p.AdminNotes, &p.RejectionReason, &reviewedBy, &approvedAt,
		&p.IsPublic, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ReviewedBy = nullInt32Ptr(reviewedBy)
	p.ApprovedAt = nullTimePtr(approvedAt)
	return p, nil
}

func (r *supplierProfileRepository) Create(ctx context.Context, p *domain.SupplierProfile) error {
	query := `INSERT INTO supplier_profiles (user_id, slug, company_name, company_description, industry, website, status, application_reason, is_public)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		p.UserID, p.Slug, p.CompanyName, p.CompanyDescription, p.Industry, p.Website,
		p.Status, p.ApplicationReason, p.IsPublic,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *supplierProfileRepository) GetByID(ctx context.Context, id int32) (*domain.SupplierProfile, error) {
	query := `SELECT ` + supplierProfileColumns + ` FROM supplier_profiles WHERE id = $1`
	return scanSupplierProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *supplierProfileRepository) GetByUserID(ctx context.Context, userID int32) (*domain.SupplierProfile, error) {
	query := `SELECT ` + supplierProfileColumns + ` FROM supplier_profiles WHERE user_id = $1`
	return scanSupplierProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *supplierProfileRepository) GetBySlug(ctx context.Context, slug string) (*domain.SupplierProfile, error) {
	query := `SELECT ` + supplierProfileColumns + ` FROM supplier_profiles WHERE slug = $1`
	return scanSupplierProfile(r.db.QueryRowContext(ctx, query, slug))
}

func (r *supplierProfileRepository) Update(ctx context.Context, p *domain.SupplierProfile) error {
	query := `UPDATE supplier_profiles SET company_name=$1, company_description=$2, industry=$3, website=$4, status=$5,
	          application_reason=$6, admin_notes=$7, rejection_reason=$8, reviewed_by=$9, approved_at=$10,
	          is_public=$11, updated_at=$12 WHERE id=$13`
	_, err := r.db.ExecContext(ctx, query,
		p.CompanyName, p.CompanyDescription, p.Industry, p.Website, p.Status,
		p.ApplicationReason, p.AdminNotes, p.RejectionReason, p.ReviewedBy, p.ApprovedAt,
		p.IsPublic, time.Now(), p.ID,
	)
	return err
}

func (r *supplierProfileRepository) List(ctx context.Context, status domain.SupplierStatus, search string, page, pageSize int32) ([]domain.SupplierProfile, int32, error) {
	where := `WHERE 1=1`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if status != "" {
		where += ` AND status = ` + arg(status)
	}
	if search != "" {
		p := arg("%" + search + "%")
		where += fmt.Sprintf(` AND (company_name ILIKE %[1]s OR industry ILIKE %[1]s)`, p)
	}

	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM supplier_profiles `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + supplierProfileColumns + ` FROM supplier_profiles ` + where +
		` ORDER BY created_at DESC LIMIT ` + arg(pageSize) + ` OFFSET ` + arg((page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []domain.SupplierProfile
	for rows.Next() {
		p, err := scanSupplierProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, total, rows.Err()
}

func (r *supplierProfileRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var found bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM supplier_profiles WHERE slug = $1)`, slug).Scan(&found)
	return found, err
}
