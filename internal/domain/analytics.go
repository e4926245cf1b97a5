package domain

import "time"

// EventView is an append-only page-view log row.
type EventView struct {
	ID        int64     `json:"id"`
	EventID   int32     `json:"event_id"`
	UserID    *int32    `json:"user_id,omitempty"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	Referrer  string    `json:"referrer"`
	Timestamp time.Time `json:"timestamp"`
}

// OrganizerView is an append-only profile-view log row.
type OrganizerView struct {
	ID          int64     `json:"id"`
	OrganizerID int32     `json:"organizer_id"`
	UserID      *int32    `json:"user_id,omitempty"`
	IPAddress   string    `json:"ip_address"`
	UserAgent   string    `json:"user_agent"`
	Referrer    string    `json:"referrer"`
	Timestamp   time.Time `json:"timestamp"`
}

// SearchQuery is an append-only search log row.
type SearchQuery struct {
	ID           int64     `json:"id"`
	Query        string    `json:"query"`
	UserID       *int32    `json:"user_id,omitempty"`
	IPAddress    string    `json:"ip_address"`
	ResultsCount int32     `json:"results_count"`
	Category     string    `json:"category"`
	City         string    `json:"city"`
	Timestamp    time.Time `json:"timestamp"`
}

type FunnelStep string

const (
	FunnelStepStarted          FunnelStep = "started"
	FunnelStepFormFilled       FunnelStep = "form_filled"
	FunnelStepPaymentAttempted FunnelStep = "payment_attempted"
	FunnelStepCompleted        FunnelStep = "completed"
	FunnelStepAbandoned        FunnelStep = "abandoned"
)

// TicketFunnelEvent tracks a step of the ticket registration funnel.
type TicketFunnelEvent struct {
	ID        int64      `json:"id"`
	EventID   int32      `json:"event_id"`
	UserID    *int32     `json:"user_id,omitempty"`
	SessionID string     `json:"session_id"`
	Step      FunnelStep `json:"step"`
	IPAddress string     `json:"ip_address"`
	Timestamp time.Time  `json:"timestamp"`
}

// DailyStats is the precomputed per-date snapshot, upserted
// idempotently keyed by Date (a calendar date, time component zero).
type DailyStats struct {
	ID   int32     `json:"id"`
	Date time.Time `json:"date"`

	TotalEvents     int32 `json:"total_events"`
	NewEvents       int32 `json:"new_events"`
	PublishedEvents int32 `json:"published_events"`

	TotalUsers  int32 `json:"total_users"`
	NewUsers    int32 `json:"new_users"`
	ActiveUsers int32 `json:"active_users"`

	TotalTickets     int32 `json:"total_tickets"`
	NewTickets       int32 `json:"new_tickets"`
	ConfirmedTickets int32 `json:"confirmed_tickets"`

	TotalRevenueCents int64 `json:"total_revenue_cents"`
	NewRevenueCents   int64 `json:"new_revenue_cents"`

	TotalViews     int32 `json:"total_views"`
	UniqueVisitors int32 `json:"unique_visitors"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DailyViewPoint is one day of a view time series.
type DailyViewPoint struct {
	Day   string `json:"day"`
	Views int32  `json:"views"`
}

// TopEvent is one entry of a views leaderboard.
type TopEvent struct {
	EventID     int32  `json:"event_id"`
	Title       string `json:"title"`
	Views       int32  `json:"views"`
	TicketsSold int32  `json:"tickets_sold"`
}

// SearchTerm is one entry of the popular-searches leaderboard.
type SearchTerm struct {
	Query string `json:"query"`
	Count int32  `json:"count"`
}

// OrganizerAnalytics is the dashboard payload scoped to one organizer.
type OrganizerAnalytics struct {
	TotalEvents      int32            `json:"total_events"`
	PublishedEvents  int32            `json:"published_events"`
	UpcomingEvents   int32            `json:"upcoming_events"`
	RecentEventViews int32            `json:"recent_event_views"`
	ProfileViews     int32            `json:"profile_views"`
	TotalFollowers   int32            `json:"total_followers"`
	NewFollowers     int32            `json:"new_followers"`
	TicketsSold      int32            `json:"tickets_sold"`
	RevenueCents     int64            `json:"revenue_cents"`
	TopEvents        []TopEvent       `json:"top_events"`
	DailyViews       []DailyViewPoint `json:"daily_views"`
	PeriodDays       int              `json:"period_days"`
}

// PlatformAnalytics is the platform-wide dashboard payload.
type PlatformAnalytics struct {
	TotalEvents       int32        `json:"total_events"`
	NewEvents         int32        `json:"new_events"`
	PublishedEvents   int32        `json:"published_events"`
	TotalUsers        int32        `json:"total_users"`
	NewUsers          int32        `json:"new_users"`
	StaffUsers        int32        `json:"staff_users"`
	TotalOrganizers   int32        `json:"total_organizers"`
	PublicOrganizers  int32        `json:"public_organizers"`
	TotalTickets      int32        `json:"total_tickets"`
	NewTickets        int32        `json:"new_tickets"`
	ConfirmedTickets  int32        `json:"confirmed_tickets"`
	TotalRevenueCents int64        `json:"total_revenue_cents"`
	NewRevenueCents   int64        `json:"new_revenue_cents"`
	TotalViews        int32        `json:"total_views"`
	NewViews          int32        `json:"new_views"`
	PopularSearches   []SearchTerm `json:"popular_searches"`
	PeriodDays        int          `json:"period_days"`
}
