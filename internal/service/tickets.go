package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

type TicketService struct {
	tickets repository.TicketRepository
	events  repository.EventRepository
	now     func() time.Time
}

func NewTicketService(tickets repository.TicketRepository, events repository.EventRepository) *TicketService {
	return &TicketService{tickets: tickets, events: events, now: time.Now}
}

// Register reserves a pending ticket at the event's current price.
// Confirmation happens separately once payment settles.
func (s *TicketService) Register(ctx context.Context, actor *domain.User, eventID int32) (*domain.Ticket, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !event.Listable() {
		return nil, fmt.Errorf("%w: event is not open for registration", ErrValidation)
	}

	if event.Capacity > 0 {
		sold, err := s.tickets.CountConfirmedByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if sold >= event.Capacity {
			return nil, fmt.Errorf("%w: event is sold out", ErrValidation)
		}
	}

	ticket := &domain.Ticket{
		EventID:         eventID,
		UserID:          actor.ID,
		Status:          domain.TicketStatusPending,
		AmountPaidCents: event.PriceCents,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	logger.Info("ticket reserved", "ticket_id", ticket.ID, "event_id", eventID, "user_id", actor.ID)
	return ticket, nil
}

// Confirm marks a pending ticket paid. Confirming twice is a no-op.
func (s *TicketService) Confirm(ctx context.Context, actor *domain.User, ticketID int32) (*domain.Ticket, error) {
	ticket, err := s.getOwned(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusConfirmed {
		return ticket, ErrAlreadyProcessed
	}
	if ticket.Status == domain.TicketStatusCancelled {
		return ticket, ErrInvalidTransition
	}

	ticket.Status = domain.TicketStatusConfirmed
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	logger.Info("ticket confirmed", "ticket_id", ticket.ID, "amount_cents", ticket.AmountPaidCents)
	return ticket, nil
}

func (s *TicketService) Cancel(ctx context.Context, actor *domain.User, ticketID int32) (*domain.Ticket, error) {
	ticket, err := s.getOwned(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusCancelled {
		return ticket, ErrAlreadyProcessed
	}

	ticket.Status = domain.TicketStatusCancelled
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	logger.Info("ticket cancelled", "ticket_id", ticket.ID)
	return ticket, nil
}

func (s *TicketService) ListMine(ctx context.Context, actor *domain.User, page, pageSize int32) ([]domain.Ticket, int32, error) {
	if page < 1 {
		page = 1
	}
	return s.tickets.ListByUser(ctx, actor.ID, page, normalizePageSize(pageSize))
}

func (s *TicketService) getOwned(ctx context.Context, actor *domain.User, ticketID int32) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if ticket.UserID != actor.ID && !actor.IsStaff {
		return nil, ErrNotAuthorized
	}
	return ticket, nil
}
