package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

type dailyStatsRepository struct {
	db *sql.DB
}

func NewDailyStatsRepository(db *sql.DB) repository.DailyStatsRepository {
	return &dailyStatsRepository{db: db}
}

const dailyStatsColumns = `id, date, total_events, new_events, published_events,
	total_users, new_users, active_users, total_tickets, new_tickets, confirmed_tickets,
	total_revenue_cents, new_revenue_cents, total_views, unique_visitors, created_at, updated_at`

func scanDailyStats(row interface{ Scan(...any) error }) (*domain.DailyStats, error) {
	s := &domain.DailyStats{}
	err := row.Scan(
		&s.ID, &s.Date, &s.TotalEvents, &s.NewEvents, &s.PublishedEvents,
		&s.TotalUsers, &s.NewUsers, &s.ActiveUsers, &s.TotalTickets, &s.NewTickets, &s.ConfirmedTickets,
		&s.TotalRevenueCents, &s.NewRevenueCents, &s.TotalViews, &s.UniqueVisitors,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Upsert writes the snapshot for its date, replacing any earlier run
// for the same date. Regenerating a day is safe and leaves one row.
func (r *dailyStatsRepository) Upsert(ctx context.Context, s *domain.DailyStats) error {
	query := `INSERT INTO daily_stats (date, total_events, new_events, published_events,
	            total_users, new_users, active_users, total_tickets, new_tickets, confirmed_tickets,
	            total_revenue_cents, new_revenue_cents, total_views, unique_visitors, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)
	          ON CONFLICT (date) DO UPDATE SET
	            total_events = EXCLUDED.total_events,
	            new_events = EXCLUDED.new_events,
	            published_events = EXCLUDED.published_events,
	            total_users = EXCLUDED.total_users,
	            new_users = EXCLUDED.new_users,
	            active_users = EXCLUDED.active_users,
	            total_tickets = EXCLUDED.total_tickets,
	            new_tickets = EXCLUDED.new_tickets,
	            confirmed_tickets = EXCLUDED.confirmed_tickets,
	            total_revenue_cents = EXCLUDED.total_revenue_cents,
	            new_revenue_cents = EXCLUDED.new_revenue_cents,
	            total_views = EXCLUDED.total_views,
	            unique_visitors = EXCLUDED.unique_visitors,
	            updated_at = EXCLUDED.updated_at
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		s.Date, s.TotalEvents, s.NewEvents, s.PublishedEvents,
		s.TotalUsers, s.NewUsers, s.ActiveUsers, s.TotalTickets, s.NewTickets, s.ConfirmedTickets,
		s.TotalRevenueCents, s.NewRevenueCents, s.TotalViews, s.UniqueVisitors, time.Now(),
	).Scan(&s.ID)
}

func (r *dailyStatsRepository) GetByDate(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	query := `SELECT ` + dailyStatsColumns + ` FROM daily_stats WHERE date = $1`
	return scanDailyStats(r.db.QueryRowContext(ctx, query, date))
}

func (r *dailyStatsRepository) ListRecent(ctx context.Context, days int32) ([]domain.DailyStats, error) {
	query := `SELECT ` + dailyStatsColumns + ` FROM daily_stats ORDER BY date DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.DailyStats
	for rows.Next() {
		s, err := scanDailyStats(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, *s)
	}
	return stats, rows.Err()
}
