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

type SponsorshipService struct {
	sponsorships     repository.SponsorshipRepository
	supplierProfiles repository.SupplierProfileRepository
	events           repository.EventRepository
	policy           *Policy
	now              func() time.Time
}

func NewSponsorshipService(
	sponsorships repository.SponsorshipRepository,
	supplierProfiles repository.SupplierProfileRepository,
	events repository.EventRepository,
	policy *Policy,
) *SponsorshipService {
	return &SponsorshipService{
		sponsorships:     sponsorships,
		supplierProfiles: supplierProfiles,
		events:           events,
		policy:           policy,
		now:              time.Now,
	}
}

// Apply files a sponsorship offer against an event. The actor needs a
// currently active supplier role; one pending offer per event.
func (s *SponsorshipService) Apply(ctx context.Context, actor *domain.User, eventID int32, message string, amountCents int64) (*domain.SponsorshipApplication, error) {
	if !actor.IsSupplierActive(s.now()) {
		return nil, ErrNotAuthorized
	}
	if amountCents < 0 {
		return nil, fmt.Errorf("%w: offered amount cannot be negative", ErrValidation)
	}

	profile, err := s.supplierProfiles.GetByUserID(ctx, actor.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotAuthorized
	}
	if err != nil {
		return nil, err
	}
	if profile.Status != domain.SupplierStatusApproved {
		return nil, ErrNotAuthorized
	}

	event, err := s.events.GetByID(ctx, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !event.Listable() {
		return nil, fmt.Errorf("%w: event is not open for sponsorship", ErrValidation)
	}

	pending, err := s.sponsorships.HasPending(ctx, eventID, profile.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("%w: offer already pending for this event", ErrAlreadyProcessed)
	}

	app := &domain.SponsorshipApplication{
		EventID:            eventID,
		SupplierProfileID:  profile.ID,
		CompanyName:        profile.CompanyName,
		Message:            message,
		AmountOfferedCents: amountCents,
		Status:             domain.SponsorshipStatusPending,
	}
	if err := s.sponsorships.Create(ctx, app); err != nil {
		return nil, err
	}
	logger.Info("sponsorship offer filed", "application_id", app.ID, "event_id", eventID, "supplier_profile_id", profile.ID)
	return app, nil
}

// Review decides a pending offer. Only the event's organizer or staff
// may decide, and re-deciding is a no-op.
func (s *SponsorshipService) Review(ctx context.Context, actor *domain.User, applicationID int32, approve bool) (*domain.SponsorshipApplication, error) {
	app, err := s.sponsorships.GetByID(ctx, applicationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, app.EventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != actor.ID {
		if err := s.policy.AuthorizeAdmin(actor); err != nil {
			return nil, err
		}
	} else if !actor.IsOrganizerActive(s.now()) {
		return nil, ErrNotAuthorized
	}

	if app.Status != domain.SponsorshipStatusPending {
		return app, ErrAlreadyProcessed
	}

	now := s.now()
	if approve {
		app.Status = domain.SponsorshipStatusApproved
	} else {
		app.Status = domain.SponsorshipStatusRejected
	}
	app.ReviewedBy = &actor.ID
	app.ReviewedAt = &now
	if err := s.sponsorships.Update(ctx, app); err != nil {
		return nil, err
	}
	logger.Info("sponsorship offer reviewed", "application_id", app.ID, "status", app.Status, "by", actor.ID)
	return app, nil
}

func (s *SponsorshipService) ListForEvent(ctx context.Context, actor *domain.User, eventID int32) ([]domain.SponsorshipApplication, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != actor.ID {
		if err := s.policy.AuthorizeAdmin(actor); err != nil {
			return nil, err
		}
	}
	return s.sponsorships.ListByEvent(ctx, eventID)
}

func (s *SponsorshipService) ListMine(ctx context.Context, actor *domain.User) ([]domain.SponsorshipApplication, error) {
	profile, err := s.supplierProfiles.GetByUserID(ctx, actor.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.sponsorships.ListBySupplier(ctx, profile.ID)
}
