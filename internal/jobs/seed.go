package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

// Seeder populates a development database with a demo organizer, a
// handful of events and a backdated stream of views, searches and
// ticket sales so the dashboards have something to show.
type Seeder struct {
	users             repository.UserRepository
	organizerProfiles repository.OrganizerProfileRepository
	events            repository.EventRepository
	tickets           repository.TicketRepository
	analytics         repository.AnalyticsRepository
}

func NewSeeder(
	users repository.UserRepository,
	organizerProfiles repository.OrganizerProfileRepository,
	events repository.EventRepository,
	tickets repository.TicketRepository,
	analytics repository.AnalyticsRepository,
) *Seeder {
	return &Seeder{
		users:             users,
		organizerProfiles: organizerProfiles,
		events:            events,
		tickets:           tickets,
		analytics:         analytics,
	}
}

const seedOrganizerEmail = "demo-organizer@experienciaas.local"

var seedEventTitles = []string{
	"Feria del Libro",
	"Festival de Jazz al Parque",
	"Mercado de Disenadores",
	"Noche de Stand Up",
}

var seedSearchTerms = []string{"conciertos", "feria", "teatro", "gastronomia", "jazz"}

// SeedSampleData is for development databases only. It is idempotent
// on the demo organizer but appends fresh log rows on every run.
func (s *Seeder) SeedSampleData(ctx context.Context, days int) error {
	if days < 1 {
		days = 30
	}

	organizer, err := s.ensureDemoOrganizer(ctx)
	if err != nil {
		return fmt.Errorf("seed organizer: %w", err)
	}

	events, err := s.ensureDemoEvents(ctx, organizer)
	if err != nil {
		return fmt.Errorf("seed events: %w", err)
	}

	now := time.Now().UTC()
	var views, searches, sold int
	for dayOffset := days - 1; dayOffset >= 0; dayOffset-- {
		day := now.AddDate(0, 0, -dayOffset)
		for _, event := range events {
			n := 5 + rand.Intn(25)
			for i := 0; i < n; i++ {
				view := &domain.EventView{
					EventID:   event.ID,
					IPAddress: fmt.Sprintf("198.51.100.%d", rand.Intn(254)+1),
					UserAgent: "seed",
					Timestamp: day.Add(time.Duration(rand.Intn(86400)) * time.Second),
				}
				if err := s.analytics.InsertEventView(ctx, view); err != nil {
					return fmt.Errorf("seed views: %w", err)
				}
				views++
			}
			if rand.Intn(3) == 0 {
				ticket := &domain.Ticket{
					EventID:         event.ID,
					UserID:          organizer.ID,
					Status:          domain.TicketStatusConfirmed,
					AmountPaidCents: event.PriceCents,
				}
				if err := s.tickets.Create(ctx, ticket); err != nil {
					return fmt.Errorf("seed tickets: %w", err)
				}
				sold++
			}
		}
		for i := 0; i < 3+rand.Intn(5); i++ {
			query := &domain.SearchQuery{
				Query:        seedSearchTerms[rand.Intn(len(seedSearchTerms))],
				IPAddress:    fmt.Sprintf("198.51.100.%d", rand.Intn(254)+1),
				ResultsCount: int32(rand.Intn(10)),
				Timestamp:    day.Add(time.Duration(rand.Intn(86400)) * time.Second),
			}
			if err := s.analytics.InsertSearchQuery(ctx, query); err != nil {
				return fmt.Errorf("seed searches: %w", err)
			}
			searches++
		}
	}

	logger.Info("Sample data seeded",
		"days", days, "events", len(events), "views", views, "searches", searches, "tickets", sold)
	return nil
}

func (s *Seeder) ensureDemoOrganizer(ctx context.Context) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, seedOrganizerEmail)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = &domain.User{
		Email:        seedOrganizerEmail,
		Name:         "Demo Organizer",
		PasswordHash: string(hash),
		IsStaff:      true,
		IsActive:     true,
		Organizer:    domain.ActiveRoleState(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &domain.OrganizerProfile{
		UserID:       user.ID,
		Slug:         "demo-organizer",
		IsPublic:     true,
		AllowContact: true,
	}
	if err := s.organizerProfiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Seeder) ensureDemoEvents(ctx context.Context, organizer *domain.User) ([]domain.Event, error) {
	existing, _, err := s.events.ListByOrganizer(ctx, organizer.ID, 1, int32(len(seedEventTitles)))
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	start := time.Now().UTC().AddDate(0, 1, 0)
	events := make([]domain.Event, 0, len(seedEventTitles))
	for i, title := range seedEventTitles {
		event := &domain.Event{
			OrganizerID: organizer.ID,
			Title:       title,
			Slug:        fmt.Sprintf("demo-event-%d", i+1),
			Category:    "cultura",
			City:        "Medellin",
			Status:      domain.EventStatusPublished,
			StartDate:   start.AddDate(0, 0, i*7),
			PriceCents:  int64(25000 * (i + 1)),
			Capacity:    100,
		}
		if err := s.events.Create(ctx, event); err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, nil
}
