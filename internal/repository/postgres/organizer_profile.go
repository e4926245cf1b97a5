package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

type organizerProfileRepository struct {
	db *sql.DB
}

func NewOrganizerProfileRepository(db *sql.DB) repository.OrganizerProfileRepository {
	return &organizerProfileRepository{db: db}
}

const organizerProfileColumns = `id, user_id, slug, COALESCE(bio, ''), COALESCE(website, ''), COALESCE(phone, ''), COALESCE(location, ''),
	COALESCE(facebook_url, ''), COALESCE(twitter_url, ''), COALESCE(instagram_url, ''), COALESCE(linkedin_url, ''),
	is_public, allow_contact, created_at, updated_at`

func scanOrganizerProfile(row interface{ Scan(...any) error }) (*domain.OrganizerProfile, error) {
	p := &domain.OrganizerProfile{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Slug, &p.Bio, &p.Website, &p.Phone, &p.Location,
		&p.FacebookURL, &p.TwitterURL, &p.InstagramURL, &p.LinkedinURL,
		&p.IsPublic, &p.AllowContact, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *organizerProfileRepository) Create(ctx context.Context, p *domain.OrganizerProfile) error {
	query := `INSERT INTO organizer_profiles (user_id, slug, bio, website, phone, location, facebook_url, twitter_url, instagram_url, linkedin_url, is_public, allow_contact)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		p.UserID, p.Slug, p.Bio, p.Website, p.Phone, p.Location,
		p.FacebookURL, p.TwitterURL, p.InstagramURL, p.LinkedinURL,
		p.IsPublic, p.AllowContact,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *organizerProfileRepository) GetByUserID(ctx context.Context, userID int32) (*domain.OrganizerProfile, error) {
	query := `SELECT ` + organizerProfileColumns + ` FROM organizer_profiles WHERE user_id = $1`
	return scanOrganizerProfile(r.db.QueryRowContext(ctx, query, userID))
}

func (r *organizerProfileRepository) GetBySlug(ctx context.Context, slug string) (*domain.OrganizerProfile, error) {
	query := `SELECT ` + organizerProfileColumns + ` FROM organizer_profiles WHERE slug = $1`
	return scanOrganizerProfile(r.db.QueryRowContext(ctx, query, slug))
}

func (r *organizerProfileRepository) Update(ctx context.Context, p *domain.OrganizerProfile) error {
	query := `UPDATE organizer_profiles SET bio=$1, website=$2, phone=$3, location=$4,
	          facebook_url=$5, twitter_url=$6, instagram_url=$7, linkedin_url=$8,
	          is_public=$9, allow_contact=$10, updated_at=$11 WHERE id=$12`
	_, err := r.db.ExecContext(ctx, query,
		p.Bio, p.Website, p.Phone, p.Location,
		p.FacebookURL, p.TwitterURL, p.InstagramURL, p.LinkedinURL,
		p.IsPublic, p.AllowContact, time.Now(), p.ID,
	)
	return err
}

func (r *organizerProfileRepository) DeleteByUserID(ctx context.Context, userID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM organizer_profiles WHERE user_id = $1`, userID)
	return err
}

func (r *organizerProfileRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var found bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM organizer_profiles WHERE slug = $1)`, slug).Scan(&found)
	return found, err
}

func (r *organizerProfileRepository) Count(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM organizer_profiles`).Scan(&count)
	return count, err
}

func (r *organizerProfileRepository) CountPublic(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM organizer_profiles WHERE is_public = TRUE`).Scan(&count)
	return count, err
}
