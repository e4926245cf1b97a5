package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jcamiloaa/experienciaas/internal/domain"
)

type sponsorshipFixture struct {
	svc              *SponsorshipService
	sponsorships     *mockSponsorshipRepo
	supplierProfiles *mockSupplierProfileRepo
	events           *mockEventRepo
	now              time.Time
}

func newSponsorshipFixture(t *testing.T) *sponsorshipFixture {
	t.Helper()
	f := &sponsorshipFixture{
		sponsorships:     &mockSponsorshipRepo{},
		supplierProfiles: &mockSupplierProfileRepo{},
		events:           &mockEventRepo{},
		now:              time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewSponsorshipService(f.sponsorships, f.supplierProfiles, f.events, NewPolicy())
	f.svc.now = func() time.Time { return f.now }
	return f
}

func activeSupplier(id int32) *domain.User {
	return &domain.User{ID: id, IsActive: true, Supplier: domain.ActiveRoleState()}
}

func TestSponsorshipApplyFilesPendingOffer(t *testing.T) {
	f := newSponsorshipFixture(t)
	supplier := activeSupplier(7)
	profile := &domain.SupplierProfile{ID: 4, UserID: 7, CompanyName: "Sonido Total", Status: domain.SupplierStatusApproved}
	event := &domain.Event{ID: 3, Status: domain.EventStatusPublished}

	f.supplierProfiles.On("GetByUserID", mock.Anything, int32(7)).Return(profile, nil)
	f.events.On("GetByID", mock.Anything, int32(3)).Return(event, nil)
	f.sponsorships.On("HasPending", mock.Anything, int32(3), int32(4)).Return(false, nil)
	f.sponsorships.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.SponsorshipApplication) bool {
		return a.EventID == 3 && a.SupplierProfileID == 4 &&
			a.CompanyName == "Sonido Total" &&
			a.AmountOfferedCents == 500000 &&
			a.Status == domain.SponsorshipStatusPending
	})).Return(nil)

	app, err := f.svc.Apply(context.Background(), supplier, 3, "sound equipment", 500000)
	require.NoError(t, err)
	assert.Equal(t, domain.SponsorshipStatusPending, app.Status)
	f.sponsorships.AssertExpectations(t)
}

func TestSponsorshipApplyRejectsDuplicatePending(t *testing.T) {
	f := newSponsorshipFixture(t)
	supplier := activeSupplier(7)
	profile := &domain.SupplierProfile{ID: 4, UserID: 7, Status: domain.SupplierStatusApproved}
	event := &domain.Event{ID: 3, Status: domain.EventStatusPublished}

	f.supplierProfiles.On("GetByUserID", mock.Anything, int32(7)).Return(profile, nil)
	f.events.On("GetByID", mock.Anything, int32(3)).Return(event, nil)
	f.sponsorships.On("HasPending", mock.Anything, int32(3), int32(4)).Return(true, nil)

	_, err := f.svc.Apply(context.Background(), supplier, 3, "", 1000)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestSponsorshipApplyRequiresActiveSupplier(t *testing.T) {
	f := newSponsorshipFixture(t)
	user := basicUser(7) // no supplier role

	_, err := f.svc.Apply(context.Background(), user, 3, "", 1000)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	suspended := activeSupplier(8)
	suspended.Supplier = domain.RoleState{Status: domain.RoleStatusSuspended}
	_, err = f.svc.Apply(context.Background(), suspended, 3, "", 1000)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestSponsorshipReviewByEventOrganizer(t *testing.T) {
	f := newSponsorshipFixture(t)
	organizer := activeOrganizer(5)
	app := &domain.SponsorshipApplication{ID: 9, EventID: 3, Status: domain.SponsorshipStatusPending}
	event := &domain.Event{ID: 3, OrganizerID: 5, Status: domain.EventStatusPublished}

	f.sponsorships.On("GetByID", mock.Anything, int32(9)).Return(app, nil)
	f.events.On("GetByID", mock.Anything, int32(3)).Return(event, nil)
	f.sponsorships.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.SponsorshipApplication) bool {
		return a.Status == domain.SponsorshipStatusApproved &&
			a.ReviewedBy != nil && *a.ReviewedBy == 5 && a.ReviewedAt != nil
	})).Return(nil)

	reviewed, err := f.svc.Review(context.Background(), organizer, 9, true)
	require.NoError(t, err)
	assert.Equal(t, domain.SponsorshipStatusApproved, reviewed.Status)
}

func TestSponsorshipReviewDeniedForStrangers(t *testing.T) {
	f := newSponsorshipFixture(t)
	stranger := basicUser(99)
	app := &domain.SponsorshipApplication{ID: 9, EventID: 3, Status: domain.SponsorshipStatusPending}
	event := &domain.Event{ID: 3, OrganizerID: 5}

	f.sponsorships.On("GetByID", mock.Anything, int32(9)).Return(app, nil)
	f.events.On("GetByID", mock.Anything, int32(3)).Return(event, nil)

	_, err := f.svc.Review(context.Background(), stranger, 9, true)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestSponsorshipReviewDecidedOfferIsNoOp(t *testing.T) {
	f := newSponsorshipFixture(t)
	organizer := activeOrganizer(5)
	app := &domain.SponsorshipApplication{ID: 9, EventID: 3, Status: domain.SponsorshipStatusRejected}
	event := &domain.Event{ID: 3, OrganizerID: 5}

	f.sponsorships.On("GetByID", mock.Anything, int32(9)).Return(app, nil)
	f.events.On("GetByID", mock.Anything, int32(3)).Return(event, nil)

	_, err := f.svc.Review(context.Background(), organizer, 9, true)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	f.sponsorships.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
