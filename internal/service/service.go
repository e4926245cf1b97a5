// Package service holds the business rules. Services depend on the
// repository interfaces only, so tests swap in mocks.
package service

import (
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
)

// EmailSender delivers the lifecycle notifications. Sends are
// best-effort: callers log failures and complete the operation anyway.
type EmailSender interface {
	SendApplicationReceived(user *domain.User, role domain.Role) error
	SendRoleApproved(user *domain.User, role domain.Role) error
	SendRoleRejected(user *domain.User, role domain.Role, reason string) error
	SendRoleSuspended(user *domain.User, role domain.Role, until *time.Time, reason string) error
	SendRoleReactivated(user *domain.User, role domain.Role) error
	SendRoleRevoked(user *domain.User, role domain.Role, reason string) error
	SendWelcome(user *domain.User) error
}

// Services bundles every service for wiring into the HTTP layer.
type Services struct {
	Auth         *AuthService
	Roles        *RoleService
	Events       *EventService
	Tickets      *TicketService
	Sponsorships *SponsorshipService
	Analytics    *AnalyticsService
}
