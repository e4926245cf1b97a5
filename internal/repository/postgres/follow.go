package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

type followRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) repository.FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, f *domain.Follow) error {
	query := `INSERT INTO follows (follower_id, organizer_id) VALUES ($1, $2)
	          ON CONFLICT (follower_id, organizer_id) DO NOTHING RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, f.FollowerID, f.OrganizerID).Scan(&f.ID, &f.CreatedAt)
	if err == sql.ErrNoRows {
		// Already following, nothing inserted.
		return nil
	}
	return err
}

func (r *followRepository) Delete(ctx context.Context, followerID, organizerID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM follows WHERE follower_id = $1 AND organizer_id = $2`, followerID, organizerID)
	return err
}

func (r *followRepository) CountByOrganizer(ctx context.Context, organizerID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE organizer_id = $1`, organizerID).Scan(&count)
	return count, err
}

func (r *followRepository) CountByOrganizerSince(ctx context.Context, organizerID int32, since time.Time) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM follows WHERE organizer_id = $1 AND created_at >= $2`, organizerID, since).Scan(&count)
	return count, err
}
