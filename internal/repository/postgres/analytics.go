package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

type analyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) repository.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) InsertEventView(ctx context.Context, v *domain.EventView) error {
	query := `INSERT INTO event_views (event_id, user_id, ip_address, user_agent, referrer, timestamp)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		v.EventID, v.UserID, v.IPAddress, v.UserAgent, v.Referrer, v.Timestamp,
	).Scan(&v.ID)
}

func (r *analyticsRepository) InsertOrganizerView(ctx context.Context, v *domain.OrganizerView) error {
	query := `INSERT INTO organizer_views (organizer_id, user_id, ip_address, user_agent, referrer, timestamp)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		v.OrganizerID, v.UserID, v.IPAddress, v.UserAgent, v.Referrer, v.Timestamp,
	).Scan(&v.ID)
}

func (r *analyticsRepository) InsertSearchQuery(ctx context.Context, q *domain.SearchQuery) error {
	query := `INSERT INTO search_queries (query, user_id, ip_address, results_count, category, city, timestamp)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		q.Query, q.UserID, q.IPAddress, q.ResultsCount, q.Category, q.City, q.Timestamp,
	).Scan(&q.ID)
}

func (r *analyticsRepository) InsertTicketFunnelEvent(ctx context.Context, e *domain.TicketFunnelEvent) error {
	query := `INSERT INTO ticket_funnel_events (event_id, user_id, session_id, step, ip_address, timestamp)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		e.EventID, e.UserID, e.SessionID, e.Step, e.IPAddress, e.Timestamp,
	).Scan(&e.ID)
}

func (r *analyticsRepository) CountEventViewsBefore(ctx context.Context, t time.Time) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM event_views WHERE timestamp < $1`, t)
}

func (r *analyticsRepository) CountEventViewsSince(ctx context.Context, since time.Time) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM event_views WHERE timestamp >= $1`, since)
}

func (r *analyticsRepository) CountEventViewsByOrganizerSince(ctx context.Context, organizerID int32, since time.Time) (int32, error) {
	query := `SELECT COUNT(*) FROM event_views v JOIN events e ON e.id = v.event_id
	          WHERE e.organizer_id = $1 AND v.timestamp >= $2`
	return r.count(ctx, query, organizerID, since)
}

func (r *analyticsRepository) CountOrganizerViewsSince(ctx context.Context, organizerProfileID int32, since time.Time) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM organizer_views WHERE organizer_id = $1 AND timestamp >= $2`, organizerProfileID, since)
}

// CountDistinctViewerIPs approximates unique visitors for a window by
// distinct source addresses in the event view log.
func (r *analyticsRepository) CountDistinctViewerIPs(ctx context.Context, start, end time.Time) (int32, error) {
	return r.count(ctx, `SELECT COUNT(DISTINCT ip_address) FROM event_views WHERE timestamp >= $1 AND timestamp < $2`, start, end)
}

func (r *analyticsRepository) DailyEventViews(ctx context.Context, organizerID *int32, since time.Time) ([]domain.DailyViewPoint, error) {
	var rows *sql.Rows
	var err error
	if organizerID != nil {
		query := `SELECT TO_CHAR(DATE(v.timestamp), 'YYYY-MM-DD'), COUNT(*) FROM event_views v
		          JOIN events e ON e.id = v.event_id
		          WHERE e.organizer_id = $1 AND v.timestamp >= $2
		          GROUP BY DATE(v.timestamp) ORDER BY DATE(v.timestamp)`
		rows, err = r.db.QueryContext(ctx, query, *organizerID, since)
	} else {
		query := `SELECT TO_CHAR(DATE(timestamp), 'YYYY-MM-DD'), COUNT(*) FROM event_views
		          WHERE timestamp >= $1
		          GROUP BY DATE(timestamp) ORDER BY DATE(timestamp)`
		rows, err = r.db.QueryContext(ctx, query, since)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []domain.DailyViewPoint
	for rows.Next() {
		var p domain.DailyViewPoint
		if err := rows.Scan(&p.Day, &p.Views); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *analyticsRepository) TopEventsByViews(ctx context.Context, organizerID int32, limit int32) ([]domain.TopEvent, error) {
	query := `SELECT e.id, e.title, e.views,
	          (SELECT COUNT(*) FROM tickets t WHERE t.event_id = e.id AND t.status = 'confirmed')
	          FROM events e WHERE e.organizer_id = $1 ORDER BY e.views DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, organizerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []domain.TopEvent
	for rows.Next() {
		var t domain.TopEvent
		if err := rows.Scan(&t.EventID, &t.Title, &t.Views, &t.TicketsSold); err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

func (r *analyticsRepository) TopSearchTerms(ctx context.Context, since time.Time, limit int32) ([]domain.SearchTerm, error) {
	query := `SELECT LOWER(query), COUNT(*) AS hits FROM search_queries
	          WHERE timestamp >= $1 AND query <> ''
	          GROUP BY LOWER(query) ORDER BY hits DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []domain.SearchTerm
	for rows.Next() {
		var t domain.SearchTerm
		if err := rows.Scan(&t.Query, &t.Count); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

func (r *analyticsRepository) count(ctx context.Context, query string, args ...any) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}
