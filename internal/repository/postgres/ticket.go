package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

type ticketRepository struct {
	db *sql.DB
}

func NewTicketRepository(db *sql.DB) repository.TicketRepository {
	return &ticketRepository{db: db}
}

const ticketColumns = `id, event_id, user_id, status, amount_paid_cents, created_at, updated_at`

func scanTicket(row interface{ Scan(...any) error }) (*domain.Ticket, error) {
	t := &domain.Ticket{}
	err := row.Scan(&t.ID, &t.EventID, &t.UserID, &t.Status, &t.AmountPaidCents, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *ticketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	query := `INSERT INTO tickets (event_id, user_id, status, amount_paid_cents)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, t.EventID, t.UserID, t.Status, t.AmountPaidCents).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int32) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	return scanTicket(r.db.QueryRowContext(ctx, query, id))
}

func (r *ticketRepository) Update(ctx context.Context, t *domain.Ticket) error {
	query := `UPDATE tickets SET status=$1, amount_paid_cents=$2, updated_at=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, t.Status, t.AmountPaidCents, time.Now(), t.ID)
	return err
}

func (r *ticketRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Ticket, int32, error) {
	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, total, rows.Err()
}

func (r *ticketRepository) CountConfirmedByEvent(ctx context.Context, eventID int32) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tickets WHERE event_id = $1 AND status = 'confirmed'`, eventID)
}

func (r *ticketRepository) CountCreatedBefore(ctx context.Context, t time.Time) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tickets WHERE created_at < $1`, t)
}

func (r *ticketRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tickets WHERE created_at >= $1 AND created_at < $2`, start, end)
}

func (r *ticketRepository) CountConfirmed(ctx context.Context) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tickets WHERE status = 'confirmed'`)
}

func (r *ticketRepository) CountConfirmedBefore(ctx context.Context, t time.Time) (int32, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM tickets WHERE status = 'confirmed' AND created_at < $1`, t)
}

func (r *ticketRepository) CountConfirmedByOrganizerSince(ctx context.Context, organizerID int32, since time.Time) (int32, error) {
	query := `SELECT COUNT(*) FROM tickets t JOIN events e ON e.id = t.event_id
	          WHERE e.organizer_id = $1 AND t.status = 'confirmed' AND t.created_at >= $2`
	return r.count(ctx, query, organizerID, since)
}

// Revenue sums cover confirmed tickets only and COALESCE to zero so an
// empty day reports 0, not NULL.
func (r *ticketRepository) SumConfirmedRevenue(ctx context.Context) (int64, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount_paid_cents), 0) FROM tickets WHERE status = 'confirmed'`)
}

func (r *ticketRepository) SumConfirmedRevenueBefore(ctx context.Context, t time.Time) (int64, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount_paid_cents), 0) FROM tickets WHERE status = 'confirmed' AND created_at < $1`, t)
}

func (r *ticketRepository) SumConfirmedRevenueBetween(ctx context.Context, start, end time.Time) (int64, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount_paid_cents), 0) FROM tickets WHERE status = 'confirmed' AND created_at >= $1 AND created_at < $2`, start, end)
}

func (r *ticketRepository) SumConfirmedRevenueByOrganizerSince(ctx context.Context, organizerID int32, since time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(t.amount_paid_cents), 0) FROM tickets t JOIN events e ON e.id = t.event_id
	          WHERE e.organizer_id = $1 AND t.status = 'confirmed' AND t.created_at >= $2`
	return r.sum(ctx, query, organizerID, since)
}

func (r *ticketRepository) count(ctx context.Context, query string, args ...any) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func (r *ticketRepository) sum(ctx context.Context, query string, args ...any) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}
