package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/cache"
	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/repository"
	"github.com/jcamiloaa/experienciaas/internal/utils"
)

const defaultDashboardDays = 30

type AnalyticsService struct {
	users             repository.UserRepository
	events            repository.EventRepository
	tickets           repository.TicketRepository
	follows           repository.FollowRepository
	organizerProfiles repository.OrganizerProfileRepository
	analytics         repository.AnalyticsRepository
	dailyStats        repository.DailyStatsRepository
	policy            *Policy
	cache             *cache.Cache
	cacheTTL          time.Duration
	now               func() time.Time
}

func NewAnalyticsService(
	users repository.UserRepository,
	events repository.EventRepository,
	tickets repository.TicketRepository,
	follows repository.FollowRepository,
	organizerProfiles repository.OrganizerProfileRepository,
	analytics repository.AnalyticsRepository,
	dailyStats repository.DailyStatsRepository,
	policy *Policy,
	c *cache.Cache,
	cacheTTL time.Duration,
) *AnalyticsService {
	return &AnalyticsService{
		users:             users,
		events:            events,
		tickets:           tickets,
		follows:           follows,
		organizerProfiles: organizerProfiles,
		analytics:         analytics,
		dailyStats:        dailyStats,
		policy:            policy,
		cache:             c,
		cacheTTL:          cacheTTL,
		now:               time.Now,
	}
}

// TrackEventView appends to the view log and bumps the event's
// denormalized counter. Both writes are fire-and-forget from the
// caller's perspective; tracking failures never break page loads.
func (s *AnalyticsService) TrackEventView(ctx context.Context, eventID int32, userID *int32, ip, userAgent, referrer string) {
	view := &domain.EventView{
		EventID:   eventID,
		UserID:    userID,
		IPAddress: ip,
		UserAgent: userAgent,
		Referrer:  referrer,
		Timestamp: s.now(),
	}
	if err := s.analytics.InsertEventView(ctx, view); err != nil {
		logger.Warn("event view tracking failed", "event_id", eventID, "error", err)
		return
	}
	if err := s.events.IncrementViews(ctx, eventID); err != nil {
		logger.Warn("event view counter bump failed", "event_id", eventID, "error", err)
	}
}

func (s *AnalyticsService) TrackOrganizerView(ctx context.Context, organizerProfileID int32, userID *int32, ip, userAgent, referrer string) {
	view := &domain.OrganizerView{
		OrganizerID: organizerProfileID,
		UserID:      userID,
		IPAddress:   ip,
		UserAgent:   userAgent,
		Referrer:    referrer,
		Timestamp:   s.now(),
	}
	if err := s.analytics.InsertOrganizerView(ctx, view); err != nil {
		logger.Warn("organizer view tracking failed", "organizer_id", organizerProfileID, "error", err)
	}
}

func (s *AnalyticsService) TrackSearch(ctx context.Context, query string, userID *int32, ip string, resultsCount int32, category, city string) {
	record := &domain.SearchQuery{
		Query:        strings.TrimSpace(query),
		UserID:       userID,
		IPAddress:    ip,
		ResultsCount: resultsCount,
		Category:     category,
		City:         city,
		Timestamp:    s.now(),
	}
	if err := s.analytics.InsertSearchQuery(ctx, record); err != nil {
		logger.Warn("search tracking failed", "error", err)
	}
}

func (s *AnalyticsService) TrackFunnelStep(ctx context.Context, eventID int32, userID *int32, sessionID string, step domain.FunnelStep, ip string) {
	record := &domain.TicketFunnelEvent{
		EventID:   eventID,
		UserID:    userID,
		SessionID: sessionID,
		Step:      step,
		IPAddress: ip,
		Timestamp: s.now(),
	}
	if err := s.analytics.InsertTicketFunnelEvent(ctx, record); err != nil {
		logger.Warn("funnel tracking failed", "event_id", eventID, "step", step, "error", err)
	}
}

// OrganizerDashboard assembles the per-organizer dashboard, serving
// from Redis when a recent copy exists.
func (s *AnalyticsService) OrganizerDashboard(ctx context.Context, actor *domain.User, organizerUserID int32, days int) (*domain.OrganizerAnalytics, error) {
	if err := s.policy.AuthorizeOrganizerAnalytics(actor, organizerUserID); err != nil {
		return nil, err
	}
	if days < 1 {
		days = defaultDashboardDays
	}

	key := fmt.Sprintf("analytics:organizer:%d:%d", organizerUserID, days)
	cached := &domain.OrganizerAnalytics{}
	if err := s.cache.GetJSON(ctx, key, cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("dashboard cache read failed", "key", key, "error", err)
	}

	now := s.now()
	since := now.AddDate(0, 0, -days)
	out := &domain.OrganizerAnalytics{PeriodDays: days}

	var err error
	if out.TotalEvents, err = s.events.CountByOrganizer(ctx, organizerUserID); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if out.PublishedEvents, err = s.events.CountPublishedByOrganizer(ctx, organizerUserID); err != nil {
		return nil, fmt.Errorf("count published events: %w", err)
	}
	if out.UpcomingEvents, err = s.events.CountUpcomingByOrganizer(ctx, organizerUserID, now); err != nil {
		return nil, fmt.Errorf("count upcoming events: %w", err)
	}
	if out.RecentEventViews, err = s.analytics.CountEventViewsByOrganizerSince(ctx, organizerUserID, since); err != nil {
		return nil, fmt.Errorf("count event views: %w", err)
	}
	if out.TicketsSold, err = s.tickets.CountConfirmedByOrganizerSince(ctx, organizerUserID, since); err != nil {
		return nil, fmt.Errorf("count tickets sold: %w", err)
	}
	if out.RevenueCents, err = s.tickets.SumConfirmedRevenueByOrganizerSince(ctx, organizerUserID, since); err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}

	profile, err := s.organizerProfiles.GetByUserID(ctx, organizerUserID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// No profile yet: follower and profile-view sections stay zero.
	case err != nil:
		return nil, fmt.Errorf("load organizer profile: %w", err)
	default:
		if out.ProfileViews, err = s.analytics.CountOrganizerViewsSince(ctx, profile.ID, since); err != nil {
			return nil, fmt.Errorf("count profile views: %w", err)
		}
		if out.TotalFollowers, err = s.follows.CountByOrganizer(ctx, profile.ID); err != nil {
			return nil, fmt.Errorf("count followers: %w", err)
		}
		if out.NewFollowers, err = s.follows.CountByOrganizerSince(ctx, profile.ID, since); err != nil {
			return nil, fmt.Errorf("count new followers: %w", err)
		}
	}

	if out.TopEvents, err = s.analytics.TopEventsByViews(ctx, organizerUserID, 5); err != nil {
		return nil, fmt.Errorf("top events: %w", err)
	}
	if out.DailyViews, err = s.analytics.DailyEventViews(ctx, &organizerUserID, since); err != nil {
		return nil, fmt.Errorf("daily views: %w", err)
	}

	s.cache.SetJSON(ctx, key, out, s.cacheTTL)
	return out, nil
}

// PlatformDashboard assembles the staff-only platform dashboard.
func (s *AnalyticsService) PlatformDashboard(ctx context.Context, actor *domain.User, days int) (*domain.PlatformAnalytics, error) {
	if err := s.policy.AuthorizePlatformAnalytics(actor); err != nil {
		return nil, err
	}
	if days < 1 {
		days = defaultDashboardDays
	}

	key := fmt.Sprintf("analytics:platform:%d", days)
	cached := &domain.PlatformAnalytics{}
	if err := s.cache.GetJSON(ctx, key, cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("dashboard cache read failed", "key", key, "error", err)
	}

	now := s.now()
	since := now.AddDate(0, 0, -days)
	out := &domain.PlatformAnalytics{PeriodDays: days}

	var err error
	if out.TotalEvents, err = s.events.CountCreatedBefore(ctx, now); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if out.NewEvents, err = s.events.CountCreatedBetween(ctx, since, now); err != nil {
		return nil, fmt.Errorf("count new events: %w", err)
	}
	if out.PublishedEvents, err = s.events.CountPublished(ctx); err != nil {
		return nil, fmt.Errorf("count published events: %w", err)
	}
	if out.TotalUsers, err = s.users.CountCreatedBefore(ctx, now); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if out.NewUsers, err = s.users.CountCreatedBetween(ctx, since, now); err != nil {
		return nil, fmt.Errorf("count new users: %w", err)
	}
	if out.StaffUsers, err = s.users.CountStaff(ctx); err != nil {
		return nil, fmt.Errorf("count staff: %w", err)
	}
	if out.TotalOrganizers, err = s.organizerProfiles.Count(ctx); err != nil {
		return nil, fmt.Errorf("count organizers: %w", err)
	}
	if out.PublicOrganizers, err = s.organizerProfiles.CountPublic(ctx); err != nil {
		return nil, fmt.Errorf("count public organizers: %w", err)
	}
	if out.TotalTickets, err = s.tickets.CountCreatedBefore(ctx, now); err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}
	if out.NewTickets, err = s.tickets.CountCreatedBetween(ctx, since, now); err != nil {
		return nil, fmt.Errorf("count new tickets: %w", err)
	}
	if out.ConfirmedTickets, err = s.tickets.CountConfirmed(ctx); err != nil {
		return nil, fmt.Errorf("count confirmed tickets: %w", err)
	}
	if out.TotalRevenueCents, err = s.tickets.SumConfirmedRevenue(ctx); err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	if out.NewRevenueCents, err = s.tickets.SumConfirmedRevenueBetween(ctx, since, now); err != nil {
		return nil, fmt.Errorf("sum new revenue: %w", err)
	}
	if out.TotalViews, err = s.analytics.CountEventViewsBefore(ctx, now); err != nil {
		return nil, fmt.Errorf("count views: %w", err)
	}
	if out.NewViews, err = s.analytics.CountEventViewsSince(ctx, since); err != nil {
		return nil, fmt.Errorf("count new views: %w", err)
	}
	if out.PopularSearches, err = s.analytics.TopSearchTerms(ctx, since, 10); err != nil {
		return nil, fmt.Errorf("top searches: %w", err)
	}

	s.cache.SetJSON(ctx, key, out, s.cacheTTL)
	return out, nil
}

// GenerateDailyStats computes and upserts the snapshot for the
// calendar day containing date. Running it twice for the same day
// replaces the row, so regeneration and backfill are always safe.
func (s *AnalyticsService) GenerateDailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	start, end := utils.DayBounds(date)
	stats := &domain.DailyStats{Date: start}

	var err error
	if stats.TotalEvents, err = s.events.CountCreatedBefore(ctx, end); err != nil {
		return nil, fmt.Errorf("total events: %w", err)
	}
	if stats.NewEvents, err = s.events.CountCreatedBetween(ctx, start, end); err != nil {
		return nil, fmt.Errorf("new events: %w", err)
	}
	if stats.PublishedEvents, err = s.events.CountPublishedBefore(ctx, end); err != nil {
		return nil, fmt.Errorf("published events: %w", err)
	}
	if stats.TotalUsers, err = s.users.CountCreatedBefore(ctx, end); err != nil {
		return nil, fmt.Errorf("total users: %w", err)
	}
	if stats.NewUsers, err = s.users.CountCreatedBetween(ctx, start, end); err != nil {
		return nil, fmt.Errorf("new users: %w", err)
	}
	if stats.ActiveUsers, err = s.users.CountActiveBetween(ctx, start, end); err != nil {
		return nil, fmt.Errorf("active users: %w", err)
	}
	if stats.TotalTickets, err = s.tickets.CountCreatedBefore(ctx, end); err != nil {
		return nil, fmt.Errorf("total tickets: %w", err)
	}
	if stats.NewTickets, err = s.tickets.CountCreatedBetween(ctx, start, end); err != nil {
		return nil, fmt.Errorf("new tickets: %w", err)
	}
	if stats.ConfirmedTickets, err = s.tickets.CountConfirmedBefore(ctx, end); err != nil {
		return nil, fmt.Errorf("confirmed tickets: %w", err)
	}
	if stats.TotalRevenueCents, err = s.tickets.SumConfirmedRevenueBefore(ctx, end); err != nil {
		return nil, fmt.Errorf("total revenue: %w", err)
	}
	if stats.NewRevenueCents, err = s.tickets.SumConfirmedRevenueBetween(ctx, start, end); err != nil {
		return nil, fmt.Errorf("new revenue: %w", err)
	}
	if stats.TotalViews, err = s.analytics.CountEventViewsBefore(ctx, end); err != nil {
		return nil, fmt.Errorf("total views: %w", err)
	}
	if stats.UniqueVisitors, err = s.analytics.CountDistinctViewerIPs(ctx, start, end); err != nil {
		return nil, fmt.Errorf("unique visitors: %w", err)
	}

	if err := s.dailyStats.Upsert(ctx, stats); err != nil {
		return nil, fmt.Errorf("upsert daily stats: %w", err)
	}

	logger.Info("daily stats generated",
		"date", utils.FormatDate(start),
		"new_users", stats.NewUsers,
		"new_tickets", stats.NewTickets,
		"new_revenue_cents", stats.NewRevenueCents,
	)
	return stats, nil
}

// DailyStatsHistory returns the newest snapshots, staff only.
func (s *AnalyticsService) DailyStatsHistory(ctx context.Context, actor *domain.User, days int32) ([]domain.DailyStats, error) {
	if err := s.policy.AuthorizePlatformAnalytics(actor); err != nil {
		return nil, err
	}
	if days < 1 || days > 365 {
		days = defaultDashboardDays
	}
	return s.dailyStats.ListRecent(ctx, days)
}
