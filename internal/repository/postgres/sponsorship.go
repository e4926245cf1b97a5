package postgres

import (
	"context"
	"database/sql"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

type sponsorshipRepository struct {
	db *sql.DB
}

func NewSponsorshipRepository(db *sql.DB) repository.SponsorshipRepository {
	return &sponsorshipRepository{db: db}
}

const sponsorshipColumns = `id, event_id, supplier_profile_id, company_name, COALESCE(message, ''), amount_offered_cents, status, reviewed_by, reviewed_at, created_at`

func scanSponsorship(row interface{ Scan(...any) error }) (*domain.SponsorshipApplication, error) {
	app := &domain.SponsorshipApplication{}
	var reviewedBy sql.NullInt32
	var reviewedAt sql.NullTime
	err := row.Scan(
		&app.ID, &app.EventID, &app.SupplierProfileID, &app.CompanyName, &app.Message,
		&app.AmountOfferedCents, &app.Status, &reviewedBy, &reviewedAt, &app.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.ReviewedBy = nullInt32Ptr(reviewedBy)
	app.ReviewedAt = nullTimePtr(reviewedAt)
	return app, nil
}

func (r *sponsorshipRepository) Create(ctx context.Context, app *domain.SponsorshipApplication) error {
	query := `INSERT INTO sponsorship_applications (event_id, supplier_profile_id, company_name, message, amount_offered_cents, status)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		app.EventID, app.SupplierProfileID, app.CompanyName, app.Message, app.AmountOfferedCents, app.Status,
	).Scan(&app.ID, &app.CreatedAt)
}

func (r *sponsorshipRepository) GetByID(ctx context.Context, id int32) (*domain.SponsorshipApplication, error) {
	query := `SELECT ` + sponsorshipColumns + ` FROM sponsorship_applications WHERE id = $1`
	return scanSponsorship(r.db.QueryRowContext(ctx, query, id))
}

func (r *sponsorshipRepository) Update(ctx context.Context, app *domain.SponsorshipApplication) error {
	query := `UPDATE sponsorship_applications SET status=$1, reviewed_by=$2, reviewed_at=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, app.Status, app.ReviewedBy, app.ReviewedAt, app.ID)
	return err
}

func (r *sponsorshipRepository) ListByEvent(ctx context.Context, eventID int32) ([]domain.SponsorshipApplication, error) {
	query := `SELECT ` + sponsorshipColumns + ` FROM sponsorship_applications WHERE event_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, eventID)
}

func (r *sponsorshipRepository) ListBySupplier(ctx context.Context, supplierProfileID int32) ([]domain.SponsorshipApplication, error) {
	query := `SELECT ` + sponsorshipColumns + ` FROM sponsorship_applications WHERE supplier_profile_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, supplierProfileID)
}

func (r *sponsorshipRepository) list(ctx context.Context, query string, args ...any) ([]domain.SponsorshipApplication, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.SponsorshipApplication
	for rows.Next() {
		app, err := scanSponsorship(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *sponsorshipRepository) HasPending(ctx context.Context, eventID, supplierProfileID int32) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM sponsorship_applications WHERE event_id = $1 AND supplier_profile_id = $2 AND status = 'pending')`
	var found bool
	err := r.db.QueryRowContext(ctx, query, eventID, supplierProfileID).Scan(&found)
	return found, err
}
