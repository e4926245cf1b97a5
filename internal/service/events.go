package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/repository"
	"github.com/jcamiloaa/experienciaas/internal/utils"
)

type EventService struct {
	events repository.EventRepository
	policy *Policy
	now    func() time.Time
}

func NewEventService(events repository.EventRepository, policy *Policy) *EventService {
	return &EventService{events: events, policy: policy, now: time.Now}
}

// CreateEventInput carries the organizer-supplied fields.
type CreateEventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	City        string     `json:"city"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	PriceCents  int64      `json:"price_cents"`
	Capacity    int32      `json:"capacity"`
}

// Create makes a draft event. Only a currently active organizer may
// create; a suspended one is blocked immediately.
func (s *EventService) Create(ctx context.Context, actor *domain.User, input CreateEventInput) (*domain.Event, error) {
	if !actor.IsOrganizerActive(s.now()) {
		return nil, ErrNotAuthorized
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if input.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if input.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity cannot be negative", ErrValidation)
	}

	slug, err := s.uniqueSlug(ctx, input.Title)
	if err != nil {
		return nil, err
	}

	event := &domain.Event{
		OrganizerID: actor.ID,
		Title:       strings.TrimSpace(input.Title),
		Slug:        slug,
		Description: input.Description,
		Category:    input.Category,
		City:        input.City,
		Status:      domain.EventStatusDraft,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		PriceCents:  input.PriceCents,
		Capacity:    input.Capacity,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	logger.Info("event created", "event_id", event.ID, "organizer_id", actor.ID)
	return event, nil
}

// Update edits an event owned by the actor. Staff may edit any event.
func (s *EventService) Update(ctx context.Context, actor *domain.User, eventID int32, input CreateEventInput) (*domain.Event, error) {
	event, err := s.getOwned(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	event.Title = strings.TrimSpace(input.Title)
	event.Description = input.Description
	event.Category = input.Category
	event.City = input.City
	event.StartDate = input.StartDate
	event.EndDate = input.EndDate
	event.PriceCents = input.PriceCents
	event.Capacity = input.Capacity
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// SetStatus moves an event through its lifecycle. Publishing requires
// the organizer role to be active at that moment.
func (s *EventService) SetStatus(ctx context.Context, actor *domain.User, eventID int32, status domain.EventStatus) (*domain.Event, error) {
	switch status {
	case domain.EventStatusDraft, domain.EventStatusPublished, domain.EventStatusSoldOut,
		domain.EventStatusCancelled, domain.EventStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	event, err := s.getOwned(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == status {
		return event, ErrAlreadyProcessed
	}

	event.Status = status
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	logger.Info("event status changed", "event_id", event.ID, "status", status)
	return event, nil
}

func (s *EventService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	event, err := s.events.GetBySlug(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return event, err
}

func (s *EventService) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return event, err
}

// Search lists publicly visible events.
func (s *EventService) Search(ctx context.Context, filter repository.EventSearchFilter, page, pageSize int32) ([]domain.Event, int32, error) {
	if page < 1 {
		page = 1
	}
	return s.events.Search(ctx, filter, page, normalizePageSize(pageSize))
}

func (s *EventService) ListByOrganizer(ctx context.Context, organizerID int32, page, pageSize int32) ([]domain.Event, int32, error) {
	if page < 1 {
		page = 1
	}
	return s.events.ListByOrganizer(ctx, organizerID, page, normalizePageSize(pageSize))
}

func (s *EventService) getOwned(ctx context.Context, actor *domain.User, eventID int32) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if event.OrganizerID == actor.ID {
		if !actor.IsOrganizerActive(s.now()) {
			return nil, ErrNotAuthorized
		}
		return event, nil
	}
	if err := s.policy.AuthorizeAdmin(actor); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = "event"
	}
	candidate := base
	for i := 2; ; i++ {
		taken, err := s.events.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
