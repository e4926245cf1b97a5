package service

import (
	"github.com/jcamiloaa/experienciaas/internal/domain"
)

// Policy centralizes who may do what. Every privileged service method
// consults it before touching state, so the rules live in one place
// instead of being re-derived per handler.
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

// AuthorizeAdmin verifies the actor can use the management surface.
// Every mutating role or account transition is superuser-only; being
// an approved organizer grants is_staff but no management rights.
// Deactivated accounts lose admin access immediately.
func (p *Policy) AuthorizeAdmin(actor *domain.User) error {
	if actor == nil || !actor.IsActive || !actor.IsSuperuser {
		return ErrNotAuthorized
	}
	return nil
}

// AuthorizeRoleAction verifies the actor may apply a role or account
// action to the target. Superusers are never valid targets, and an
// admin cannot target their own account.
func (p *Policy) AuthorizeRoleAction(actor, target *domain.User) error {
	if err := p.AuthorizeAdmin(actor); err != nil {
		return err
	}
	if target.IsSuperuser {
		return ErrProtectedAccount
	}
	if actor.ID == target.ID {
		return ErrNotAuthorized
	}
	return nil
}

// AuthorizePromotion verifies the actor may grant roles directly,
// bypassing the application flow. Only superusers can.
func (p *Policy) AuthorizePromotion(actor *domain.User) error {
	return p.AuthorizeAdmin(actor)
}

// AuthorizePlatformAnalytics restricts the platform dashboard to
// staff. The dashboard is read-only, so it does not need the
// superuser gate the mutating surface carries.
func (p *Policy) AuthorizePlatformAnalytics(actor *domain.User) error {
	if actor == nil || !actor.IsActive || !actor.IsStaff {
		return ErrNotAuthorized
	}
	return nil
}

// AuthorizeOrganizerAnalytics allows an organizer to see their own
// dashboard and staff to see anyone's.
func (p *Policy) AuthorizeOrganizerAnalytics(actor *domain.User, organizerUserID int32) error {
	if actor == nil || !actor.IsActive {
		return ErrNotAuthorized
	}
	if actor.ID == organizerUserID || actor.IsStaff {
		return nil
	}
	return ErrNotAuthorized
}
