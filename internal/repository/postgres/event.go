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

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, organizer_id, title, slug, COALESCE(description, ''), COALESCE(category, ''), COALESCE(city, ''),
	status, start_date, end_date, price_cents, capacity, views, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var endDate sql.NullTime
	err := row.Scan(
		&e.ID, &e.OrganizerID, &e.Title, &e.Slug, &e.Description, &e.Category, &e.City,
		&e.Status, &e.StartDate, &endDate, &e.PriceCents, &e.Capacity, &e.Views,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.EndDate = nullTimePtr(endDate)
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (organizer_id, title, slug, description, category, city, status, start_date, end_date, price_cents, capacity)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		e.OrganizerID, e.Title, e.Slug, e.Description, e.Category, e.City,
		e.Status, e.StartDate, e.EndDate, e.PriceCents, e.Capacity,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.db.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	return scanEvent(r.db.QueryRowContext(ctx, query, slug))
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events SET title=$1, description=$2, category=$3, city=$4, status=$5,
	          start_date=$6, end_date=$7, price_cents=$8, capacity=$9, updated_at=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, e.Category, e.City, e.Status,
		e.StartDate, e.EndDate, e.PriceCents, e.Capacity, time.Now(), e.ID,
	)
	return err
}

// Search lists publicly visible events, newest first.
func (r *eventRepository) Search(ctx context.Context, filter repository.EventSearchFilter, page, pageSize int32) ([]domain.Event, int32, error) {
	where := `WHERE status IN ('published', 'sold_out')`
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		where += fmt.Sprintf(` AND (title ILIKE %[1]s OR description ILIKE %[1]s)`, p)
	}
	if filter.Category != "" {
		where += ` AND category = ` + arg(filter.Category)
	}
	if filter.City != "" {
		where += ` AND city ILIKE ` + arg(filter.City)
	}

	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + ` FROM events ` + where +
		` ORDER BY start_date ASC LIMIT ` + arg(pageSize) + ` OFFSET ` + arg((page-1)*pageSize)

	logger.DatabaseCall("SELECT", "events", "query", filter.Query, "category", filter.Category, "city", filter.City)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, 0, err
	}
	defer rows.Close()

	events, err := collectEvents(rows)
	logger.DatabaseResult("SELECT", int64(len(events)), err)
	return events, total, err
}

func (r *eventRepository) ListByOrganizer(ctx context.Context, organizerID int32, page, pageSize int32) ([]domain.Event, int32, error) {
	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE organizer_id = $1`, organizerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, organizerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events, err := collectEvents(rows)
	return events, total, err
}

func collectEvents(rows *sql.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepository) IncrementViews(ctx context.Context, eventID int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE events SET views = views + 1 WHERE id = $1`, eventID)
	return err
}

func (r *eventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var found bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE slug = $1)`, slug).Scan(&found)
	return found, err
}

func (r *eventRepository) CountCreatedBefore(ctx context.Context, t time.Time) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM events WHERE created_at < $1`, t)
}

func (r *eventRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM events WHERE created_at >= $1 AND created_at < $2`, start, end)
}

func (r *eventRepository) CountPublished(ctx context.Context) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM events WHERE status = 'published'`)
}

func (r *eventRepository) CountPublishedBefore(ctx context.Context, t time.Time) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM events WHERE status = 'published' AND created_at < $1`, t)
}

func (r *eventRepository) CountByOrganizer(ctx context.Context, organizerID int32) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM events WHERE organizer_id = $1`, organizerID)
}

func (r *eventRepository) CountPublishedByOrganizer(ctx context.Context, organizerID int32) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM events WHERE organizer_id = $1 AND status = 'published'`, organizerID)
}

func (r *eventRepository) CountUpcomingByOrganizer(ctx context.Context, organizerID int32, now time.Time) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM events WHERE organizer_id = $1 AND status = 'published' AND start_date >= $2`, organizerID, now)
}

func (r *eventRepository) count(ctx context.Context, query string, args ...any) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}
