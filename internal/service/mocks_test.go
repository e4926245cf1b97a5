package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

// mockUserRepo implements repository.UserRepository
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdateRoleState(ctx context.Context, userID int32, role domain.Role, state domain.RoleState) error {
	return m.Called(ctx, userID, role, state).Error(0)
}

func (m *mockUserRepo) SetActive(ctx context.Context, userID int32, active bool) error {
	return m.Called(ctx, userID, active).Error(0)
}

func (m *mockUserRepo) RecordLogin(ctx context.Context, userID int32, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, filter repository.UserListFilter, page, pageSize int32) ([]domain.User, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Get(1).(int32), args.Error(2)
}

func (m *mockUserRepo) CountCreatedBefore(ctx context.Context, t time.Time) (int32, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockUserRepo) CountCreatedBetween(ctx context.Context, start, end time.Time) (int32, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockUserRepo) CountStaff(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockUserRepo) CountActiveBetween(ctx context.Context, start, end time.Time) (int32, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockUserRepo) SweepExpiredSuspensions(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// mockApplicationRepo implements repository.RoleApplicationRepository
type mockApplicationRepo struct {
	mock.Mock
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *domain.RoleApplication) error {
	return m.Called(ctx, app).Error(0)
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.RoleApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoleApplication), args.Error(1)
}

func (m *mockApplicationRepo) Update(ctx context.Context, app *domain.RoleApplication) error {
	return m.Called(ctx, app).Error(0)
}

func (m *mockApplicationRepo) List(ctx context.Context, filter repository.ApplicationListFilter, page, pageSize int32) ([]domain.RoleApplication, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	var apps []domain.RoleApplication
	if args.Get(0) != nil {
		apps = args.Get(0).([]domain.RoleApplication)
	}
	return apps, args.Get(1).(int32), args.Error(2)
}

func (m *mockApplicationRepo) HasPending(ctx context.Context, userID int32, role domain.Role) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

func (m *mockApplicationRepo) HasApproved(ctx context.Context, userID int32, role domain.Role) (bool, error) {
	args := m.Called(ctx, userID, role)
	return args.Bool(0), args.Error(1)
}

// mockOrganizerProfileRepo implements repository.OrganizerProfileRepository
type mockOrganizerProfileRepo struct {
	mock.Mock
}

func (m *mockOrganizerProfileRepo) Create(ctx context.Context, profile *domain.OrganizerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockOrganizerProfileRepo) GetByUserID(ctx context.Context, userID int32) (*domain.OrganizerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizerProfile), args.Error(1)
}

func (m *mockOrganizerProfileRepo) GetBySlug(ctx context.Context, slug string) (*domain.OrganizerProfile, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizerProfile), args.Error(1)
}

func (m *mockOrganizerProfileRepo) Update(ctx context.Context, profile *domain.OrganizerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockOrganizerProfileRepo) DeleteByUserID(ctx context.Context, userID int32) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockOrganizerProfileRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrganizerProfileRepo) Count(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockOrganizerProfileRepo) CountPublic(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

// mockSupplierProfileRepo implements repository.SupplierProfileRepository
type mockSupplierProfileRepo struct {
	mock.Mock
}

func (m *mockSupplierProfileRepo) Create(ctx context.Context, profile *domain.SupplierProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockSupplierProfileRepo) GetByID(ctx context.Context, id int32) (*domain.SupplierProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierProfile), args.Error(1)
}

func (m *mockSupplierProfileRepo) GetByUserID(ctx context.Context, userID int32) (*domain.SupplierProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierProfile), args.Error(1)
}

func (m *mockSupplierProfileRepo) GetBySlug(ctx context.Context, slug string) (*domain.SupplierProfile, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupplierProfile), args.Error(1)
}

func (m *mockSupplierProfileRepo) Update(ctx context.Context, profile *domain.SupplierProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockSupplierProfileRepo) List(ctx context.Context, status domain.SupplierStatus, search string, page, pageSize int32) ([]domain.SupplierProfile, int32, error) {
	args := m.Called(ctx, status, search, page, pageSize)
	var profiles []domain.SupplierProfile
	if args.Get(0) != nil {
		profiles = args.Get(0).([]domain.SupplierProfile)
	}
	return profiles, args.Get(1).(int32), args.Error(2)
}

func (m *mockSupplierProfileRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// mockFollowRepo implements repository.FollowRepository
type mockFollowRepo struct {
	mock.Mock
}

func (m *mockFollowRepo) Create(ctx context.Context, follow *domain.Follow) error {
	return m.Called(ctx, follow).Error(0)
}

func (m *mockFollowRepo) Delete(ctx context.Context, followerID, organizerID int32) error {
	return m.Called(ctx, followerID, organizerID).Error(0)
}

func (m *mockFollowRepo) CountByOrganizer(ctx context.Context, organizerID int32) (int32, error) {
	args := m.Called(ctx, organizerID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockFollowRepo) CountByOrganizerSince(ctx context.Context, organizerID int32, since time.Time) (int32, error) {
	args := m.Called(ctx, organizerID, since)
	return args.Get(0).(int32), args.Error(1)
}

// mockEventRepo implements repository.EventRepository
type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *mockEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *mockEventRepo) Update(ctx context.Context, event *domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventRepo) Search(ctx context.Context, filter repository.EventSearchFilter, page, pageSize int32) ([]domain.Event, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	var events []domain.Event
	if args.Get(0) != nil {
		events = args.Get(0).([]domain.Event)
	}
	return events, args.Get(1).(int32), args.Error(2)
}

func (m *mockEventRepo) ListByOrganizer(ctx context.Context, organizerID int32, page, pageSize int32) ([]domain.Event, int32, error) {
	args := m.Called(ctx, organizerID, page, pageSize)
	var events []domain.Event
	if args.Get(0) != nil {
		events = args.Get(0).([]domain.Event)
	}
	return events, args.Get(1).(int32), args.Error(2)
}

func (m *mockEventRepo) IncrementViews(ctx context.Context, eventID int32) error {
	return m.Called(ctx, eventID).Error(0)
}

func (m *mockEventRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *mockEventRepo) CountCreatedBefore(ctx context.Context, t time.Time) (int32, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockEventRepo) CountCreatedBetween(ctx context.Context, start, end time.Time) (int32, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockEventRepo) CountPublished(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockEventRepo) CountPublishedBefore(ctx context.Context, t time.Time) (int32, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockEventRepo) CountByOrganizer(ctx context.Context, organizerID int32) (int32, error) {
	args := m.Called(ctx, organizerID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockEventRepo) CountPublishedByOrganizer(ctx context.Context, organizerID int32) (int32, error) {
	args := m.Called(ctx, organizerID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockEventRepo) CountUpcomingByOrganizer(ctx context.Context, organizerID int32, now time.Time) (int32, error) {
	args := m.Called(ctx, organizerID, now)
	return args.Get(0).(int32), args.Error(1)
}

// mockTicketRepo implements repository.TicketRepository
type mockTicketRepo struct {
	mock.Mock
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id int32) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *mockTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

func (m *mockTicketRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Ticket, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	var tickets []domain.Ticket
	if args.Get(0) != nil {
		tickets = args.Get(0).([]domain.Ticket)
	}
	return tickets, args.Get(1).(int32), args.Error(2)
}

func (m *mockTicketRepo) CountConfirmedByEvent(ctx context.Context, eventID int32) (int32, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockTicketRepo) CountCreatedBefore(ctx context.Context, t time.Time) (int32, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockTicketRepo) CountCreatedBetween(ctx context.Context, start, end time.Time) (int32, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockTicketRepo) CountConfirmed(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockTicketRepo) CountConfirmedBefore(ctx context.Context, t time.Time) (int32, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockTicketRepo) CountConfirmedByOrganizerSince(ctx context.Context, organizerID int32, since time.Time) (int32, error) {
	args := m.Called(ctx, organizerID, since)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockTicketRepo) SumConfirmedRevenue(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTicketRepo) SumConfirmedRevenueBefore(ctx context.Context, t time.Time) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTicketRepo) SumConfirmedRevenueBetween(ctx context.Context, start, end time.Time) (int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTicketRepo) SumConfirmedRevenueByOrganizerSince(ctx context.Context, organizerID int32, since time.Time) (int64, error) {
	args := m.Called(ctx, organizerID, since)
	return args.Get(0).(int64), args.Error(1)
}

// mockSponsorshipRepo implements repository.SponsorshipRepository
type mockSponsorshipRepo struct {
	mock.Mock
}

func (m *mockSponsorshipRepo) Create(ctx context.Context, app *domain.SponsorshipApplication) error {
	return m.Called(ctx, app).Error(0)
}

func (m *mockSponsorshipRepo) GetByID(ctx context.Context, id int32) (*domain.SponsorshipApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SponsorshipApplication), args.Error(1)
}

func (m *mockSponsorshipRepo) Update(ctx context.Context, app *domain.SponsorshipApplication) error {
	return m.Called(ctx, app).Error(0)
}

func (m *mockSponsorshipRepo) ListByEvent(ctx context.Context, eventID int32) ([]domain.SponsorshipApplication, error) {
	args := m.Called(ctx, eventID)
	var apps []domain.SponsorshipApplication
	if args.Get(0) != nil {
		apps = args.Get(0).([]domain.SponsorshipApplication)
	}
	return apps, args.Error(1)
}

func (m *mockSponsorshipRepo) ListBySupplier(ctx context.Context, supplierProfileID int32) ([]domain.SponsorshipApplication, error) {
	args := m.Called(ctx, supplierProfileID)
	var apps []domain.SponsorshipApplication
	if args.Get(0) != nil {
		apps = args.Get(0).([]domain.SponsorshipApplication)
	}
	return apps, args.Error(1)
}

func (m *mockSponsorshipRepo) HasPending(ctx context.Context, eventID, supplierProfileID int32) (bool, error) {
	args := m.Called(ctx, eventID, supplierProfileID)
	return args.Bool(0), args.Error(1)
}

// mockAnalyticsRepo implements repository.AnalyticsRepository
type mockAnalyticsRepo struct {
	mock.Mock
}

func (m *mockAnalyticsRepo) InsertEventView(ctx context.Context, view *domain.EventView) error {
	return m.Called(ctx, view).Error(0)
}

func (m *mockAnalyticsRepo) InsertOrganizerView(ctx context.Context, view *domain.OrganizerView) error {
	return m.Called(ctx, view).Error(0)
}

func (m *mockAnalyticsRepo) InsertSearchQuery(ctx context.Context, query *domain.SearchQuery) error {
	return m.Called(ctx, query).Error(0)
}

func (m *mockAnalyticsRepo) InsertTicketFunnelEvent(ctx context.Context, event *domain.TicketFunnelEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockAnalyticsRepo) CountEventViewsBefore(ctx context.Context, t time.Time) (int32, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockAnalyticsRepo) CountEventViewsSince(ctx context.Context, since time.Time) (int32, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockAnalyticsRepo) CountEventViewsByOrganizerSince(ctx context.Context, organizerID int32, since time.Time) (int32, error) {
	args := m.Called(ctx, organizerID, since)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockAnalyticsRepo) CountOrganizerViewsSince(ctx context.Context, organizerProfileID int32, since time.Time) (int32, error) {
	args := m.Called(ctx, organizerProfileID, since)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockAnalyticsRepo) CountDistinctViewerIPs(ctx context.Context, start, end time.Time) (int32, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockAnalyticsRepo) DailyEventViews(ctx context.Context, organizerID *int32, since time.Time) ([]domain.DailyViewPoint, error) {
	args := m.Called(ctx, organizerID, since)
	var points []domain.DailyViewPoint
	if args.Get(0) != nil {
		points = args.Get(0).([]domain.DailyViewPoint)
	}
	return points, args.Error(1)
}

func (m *mockAnalyticsRepo) TopEventsByViews(ctx context.Context, organizerID int32, limit int32) ([]domain.TopEvent, error) {
	args := m.Called(ctx, organizerID, limit)
	var top []domain.TopEvent
	if args.Get(0) != nil {
		top = args.Get(0).([]domain.TopEvent)
	}
	return top, args.Error(1)
}

func (m *mockAnalyticsRepo) TopSearchTerms(ctx context.Context, since time.Time, limit int32) ([]domain.SearchTerm, error) {
	args := m.Called(ctx, since, limit)
	var terms []domain.SearchTerm
	if args.Get(0) != nil {
		terms = args.Get(0).([]domain.SearchTerm)
	}
	return terms, args.Error(1)
}

// mockDailyStatsRepo implements repository.DailyStatsRepository
type mockDailyStatsRepo struct {
	mock.Mock
}

func (m *mockDailyStatsRepo) Upsert(ctx context.Context, stats *domain.DailyStats) error {
	return m.Called(ctx, stats).Error(0)
}

func (m *mockDailyStatsRepo) GetByDate(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailyStats), args.Error(1)
}

func (m *mockDailyStatsRepo) ListRecent(ctx context.Context, days int32) ([]domain.DailyStats, error) {
	args := m.Called(ctx, days)
	var stats []domain.DailyStats
	if args.Get(0) != nil {
		stats = args.Get(0).([]domain.DailyStats)
	}
	return stats, args.Error(1)
}

// mockEmailSender implements EmailSender
type mockEmailSender struct {
	mock.Mock
}

func (m *mockEmailSender) SendApplicationReceived(user *domain.User, role domain.Role) error {
	return m.Called(user, role).Error(0)
}

func (m *mockEmailSender) SendRoleApproved(user *domain.User, role domain.Role) error {
	return m.Called(user, role).Error(0)
}

func (m *mockEmailSender) SendRoleRejected(user *domain.User, role domain.Role, reason string) error {
	return m.Called(user, role, reason).Error(0)
}

func (m *mockEmailSender) SendRoleSuspended(user *domain.User, role domain.Role, until *time.Time, reason string) error {
	return m.Called(user, role, until, reason).Error(0)
}

func (m *mockEmailSender) SendRoleReactivated(user *domain.User, role domain.Role) error {
	return m.Called(user, role).Error(0)
}

func (m *mockEmailSender) SendRoleRevoked(user *domain.User, role domain.Role, reason string) error {
	return m.Called(user, role, reason).Error(0)
}

func (m *mockEmailSender) SendWelcome(user *domain.User) error {
	return m.Called(user).Error(0)
}
