// Package postgres implements the repository interfaces on PostgreSQL
// using database/sql with the lib/pq driver.
package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/jcamiloaa/experienciaas/internal/repository"
)

// Store bundles every repository over a shared connection pool.
type Store struct {
	db *sql.DB

	Users             repository.UserRepository
	RoleApplications  repository.RoleApplicationRepository
	OrganizerProfiles repository.OrganizerProfileRepository
	SupplierProfiles  repository.SupplierProfileRepository
	Follows           repository.FollowRepository
	Events            repository.EventRepository
	Tickets           repository.TicketRepository
	Sponsorships      repository.SponsorshipRepository
	Analytics         repository.AnalyticsRepository
	DailyStats        repository.DailyStatsRepository
}

// Open connects to PostgreSQL and wires every repository over the pool.
func Open(dsn string, maxOpen, maxIdle int) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewStore(db), nil
}

// NewStore wires every repository over an existing pool. Tests hand in
// a sqlmock connection here.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		Users:             NewUserRepository(db),
		RoleApplications:  NewRoleApplicationRepository(db),
		OrganizerProfiles: NewOrganizerProfileRepository(db),
		SupplierProfiles:  NewSupplierProfileRepository(db),
		Follows:           NewFollowRepository(db),
		Events:            NewEventRepository(db),
		Tickets:           NewTicketRepository(db),
		Sponsorships:      NewSponsorshipRepository(db),
		Analytics:         NewAnalyticsRepository(db),
		DailyStats:        NewDailyStatsRepository(db),
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) DB() *sql.DB {
	return s.db
}
