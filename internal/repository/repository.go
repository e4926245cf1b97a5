package repository

import (
	"context"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
)

// UserListFilter narrows the management list of users.
type UserListFilter struct {
	Role   string // "organizer", "supplier", "basic" or empty
	Status string // "active", "suspended", "inactive" or empty
	Search string
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateRoleState(ctx context.Context, userID int32, role domain.Role, state domain.RoleState) error
	SetActive(ctx context.Context, userID int32, active bool) error
	RecordLogin(ctx context.Context, userID int32, at time.Time) error
	List(ctx context.Context, filter UserListFilter, page, pageSize int32) ([]domain.User, int32, error)

	// Aggregates for analytics.
	CountCreatedBefore(ctx context.Context, t time.Time) (int32, error)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int32, error)
	CountStaff(ctx context.Context) (int32, error)
	CountActiveBetween(ctx context.Context, start, end time.Time) (int32, error)

	// SweepExpiredSuspensions normalizes timed suspensions whose window
	// has passed back to active. Returns the number of role states
	// cleared (a user with both roles expired counts twice).
	SweepExpiredSuspensions(ctx context.Context, now time.Time) (int64, error)
}

// ApplicationListFilter narrows the management list of applications.
type ApplicationListFilter struct {
	Status domain.ApplicationStatus
	Role   domain.Role
	Search string
}

type RoleApplicationRepository interface {
	Create(ctx context.Context, app *domain.RoleApplication) error
	GetByID(ctx context.Context, id int32) (*domain.RoleApplication, error)
	Update(ctx context.Context, app *domain.RoleApplication) error
	List(ctx context.Context, filter ApplicationListFilter, page, pageSize int32) ([]domain.RoleApplication, int32, error)
	HasPending(ctx context.Context, userID int32, role domain.Role) (bool, error)
	HasApproved(ctx context.Context, userID int32, role domain.Role) (bool, error)
}

type OrganizerProfileRepository interface {
	Create(ctx context.Context, profile *domain.OrganizerProfile) error
	GetByUserID(ctx context.Context, userID int32) (*domain.OrganizerProfile, error)
	GetBySlug(ctx context.Context, slug string) (*domain.OrganizerProfile, error)
	Update(ctx context.Context, profile *domain.OrganizerProfile) error
	DeleteByUserID(ctx context.Context, userID int32) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	Count(ctx context.Context) (int32, error)
	CountPublic(ctx context.Context) (int32, error)
}

type SupplierProfileRepository interface {
	Create(ctx context.Context, profile *domain.SupplierProfile) error
	GetByID(ctx context.Context, id int32) (*domain.SupplierProfile, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.SupplierProfile, error)
	GetBySlug(ctx context.Context, slug string) (*domain.SupplierProfile, error)
	Update(ctx context.Context, profile *domain.SupplierProfile) error
	List(ctx context.Context, status domain.SupplierStatus, search string, page, pageSize int32) ([]domain.SupplierProfile, int32, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow) error
	Delete(ctx context.Context, followerID, organizerID int32) error
	CountByOrganizer(ctx context.Context, organizerID int32) (int32, error)
	CountByOrganizerSince(ctx context.Context, organizerID int32, since time.Time) (int32, error)
}

// EventSearchFilter narrows the public event listing.
type EventSearchFilter struct {
	Query    string
	Category string
	City     string
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Search(ctx context.Context, filter EventSearchFilter, page, pageSize int32) ([]domain.Event, int32, error)
	ListByOrganizer(ctx context.Context, organizerID int32, page, pageSize int32) ([]domain.Event, int32, error)
	IncrementViews(ctx context.Context, eventID int32) error
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Aggregates for analytics.
	CountCreatedBefore(ctx context.Context, t time.Time) (int32, error)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int32, error)
	CountPublished(ctx context.Context) (int32, error)
	CountPublishedBefore(ctx context.Context, t time.Time) (int32, error)
	CountByOrganizer(ctx context.Context, organizerID int32) (int32, error)
	CountPublishedByOrganizer(ctx context.Context, organizerID int32) (int32, error)
	CountUpcomingByOrganizer(ctx context.Context, organizerID int32, now time.Time) (int32, error)
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int32) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Ticket, int32, error)
	CountConfirmedByEvent(ctx context.Context, eventID int32) (int32, error)

	// Aggregates for analytics. Revenue sums are COALESCEd to zero in
	// SQL so an empty result set never yields null.
	CountCreatedBefore(ctx context.Context, t time.Time) (int32, error)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int32, error)
	CountConfirmed(ctx context.Context) (int32, error)
	CountConfirmedBefore(ctx context.Context, t time.Time) (int32, error)
	CountConfirmedByOrganizerSince(ctx context.Context, organizerID int32, since time.Time) (int32, error)
	SumConfirmedRevenue(ctx context.Context) (int64, error)
	SumConfirmedRevenueBefore(ctx context.Context, t time.Time) (int64, error)
	SumConfirmedRevenueBetween(ctx context.Context, start, end time.Time) (int64, error)
	SumConfirmedRevenueByOrganizerSince(ctx context.Context, organizerID int32, since time.Time) (int64, error)
}

type SponsorshipRepository interface {
	Create(ctx context.Context, app *domain.SponsorshipApplication) error
	GetByID(ctx context.Context, id int32) (*domain.SponsorshipApplication, error)
	Update(ctx context.Context, app *domain.SponsorshipApplication) error
	ListByEvent(ctx context.Context, eventID int32) ([]domain.SponsorshipApplication, error)
	ListBySupplier(ctx context.Context, supplierProfileID int32) ([]domain.SponsorshipApplication, error)
	HasPending(ctx context.Context, eventID, supplierProfileID int32) (bool, error)
}

// AnalyticsRepository owns the append-only log tables. Rows are only
// inserted and queried by date range, never updated.
type AnalyticsRepository interface {
	InsertEventView(ctx context.Context, view *domain.EventView) error
	InsertOrganizerView(ctx context.Context, view *domain.OrganizerView) error
	InsertSearchQuery(ctx context.Context, query *domain.SearchQuery) error
	InsertTicketFunnelEvent(ctx context.Context, event *domain.TicketFunnelEvent) error

	CountEventViewsBefore(ctx context.Context, t time.Time) (int32, error)
	CountEventViewsSince(ctx context.Context, since time.Time) (int32, error)
	CountEventViewsByOrganizerSince(ctx context.Context, organizerID int32, since time.Time) (int32, error)
	CountOrganizerViewsSince(ctx context.Context, organizerProfileID int32, since time.Time) (int32, error)
	CountDistinctViewerIPs(ctx context.Context, start, end time.Time) (int32, error)
	DailyEventViews(ctx context.Context, organizerID *int32, since time.Time) ([]domain.DailyViewPoint, error)
	TopEventsByViews(ctx context.Context, organizerID int32, limit int32) ([]domain.TopEvent, error)
	TopSearchTerms(ctx context.Context, since time.Time, limit int32) ([]domain.SearchTerm, error)
}

type DailyStatsRepository interface {
	// Upsert writes the snapshot keyed by stats.Date, overwriting any
	// existing row for that date.
	Upsert(ctx context.Context, stats *domain.DailyStats) error
	GetByDate(ctx context.Context, date time.Time) (*domain.DailyStats, error)
	ListRecent(ctx context.Context, days int32) ([]domain.DailyStats, error)
}
