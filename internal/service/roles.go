package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/repository"
	"github.com/jcamiloaa/experienciaas/internal/utils"
)

// Suspension durations are whole days; nil means indefinite.
const maxSuspensionDays = 365

type RoleService struct {
	users             repository.UserRepository
	applications      repository.RoleApplicationRepository
	organizerProfiles repository.OrganizerProfileRepository
	supplierProfiles  repository.SupplierProfileRepository
	follows           repository.FollowRepository
	policy            *Policy
	email             EmailSender
	now               func() time.Time
}

func NewRoleService(
	users repository.UserRepository,
	applications repository.RoleApplicationRepository,
	organizerProfiles repository.OrganizerProfileRepository,
	supplierProfiles repository.SupplierProfileRepository,
	follows repository.FollowRepository,
	policy *Policy,
	email EmailSender,
) *RoleService {
	return &RoleService{
		users:             users,
		applications:      applications,
		organizerProfiles: organizerProfiles,
		supplierProfiles:  supplierProfiles,
		follows:           follows,
		policy:            policy,
		email:             email,
		now:               time.Now,
	}
}

// Apply files a role application for the user. One live application
// per role at a time, and holders cannot re-apply.
func (s *RoleService) Apply(ctx context.Context, userID int32, role domain.Role, motivation, experience string) (*domain.RoleApplication, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if strings.TrimSpace(motivation) == "" {
		return nil, fmt.Errorf("%w: motivation is required", ErrValidation)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RoleState(role).Held() {
		return nil, fmt.Errorf("%w: role already held", ErrAlreadyProcessed)
	}

	pending, err := s.applications.HasPending(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("%w: application already pending", ErrAlreadyProcessed)
	}

	app := &domain.RoleApplication{
		UserID:     userID,
		Role:       role,
		Motivation: strings.TrimSpace(motivation),
		Experience: strings.TrimSpace(experience),
		Status:     domain.ApplicationStatusPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	logger.Info("role application filed", "user_id", userID, "role", role, "application_id", app.ID)
	s.notify(func() error { return s.email.SendApplicationReceived(user, role) })
	return app, nil
}

// Approve grants the applied role. Re-approving a processed
// application is reported as a no-op, never an error, and the original
// application row is preserved for audit either way.
func (s *RoleService) Approve(ctx context.Context, actorID, applicationID int32, adminNotes string) (*domain.RoleApplication, error) {
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	applicant, err := s.getUser(ctx, app.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeRoleAction(actor, applicant); err != nil {
		return nil, err
	}

	if app.Status == domain.ApplicationStatusApproved {
		return app, ErrAlreadyProcessed
	}
	if app.Status == domain.ApplicationStatusRejected {
		return app, fmt.Errorf("%w: application was rejected", ErrAlreadyProcessed)
	}

	if err := s.grantRole(ctx, applicant, app.Role); err != nil {
		return nil, err
	}

	now := s.now()
	app.Status = domain.ApplicationStatusApproved
	app.AdminNotes = adminNotes
	app.ProcessedBy = &actor.ID
	app.ProcessedAt = &now
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, err
	}

	logger.Info("role application approved", "application_id", app.ID, "user_id", applicant.ID, "role", app.Role, "by", actor.ID)
	s.notify(func() error { return s.email.SendRoleApproved(applicant, app.Role) })
	return app, nil
}

// Reject declines a live application. A reason is mandatory so the
// applicant always learns why.
func (s *RoleService) Reject(ctx context.Context, actorID, applicationID int32, reason string) (*domain.RoleApplication, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	applicant, err := s.getUser(ctx, app.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeRoleAction(actor, applicant); err != nil {
		return nil, err
	}

	if app.Status == domain.ApplicationStatusApproved || app.Status == domain.ApplicationStatusRejected {
		return app, ErrAlreadyProcessed
	}

	now := s.now()
	app.Status = domain.ApplicationStatusRejected
	app.RejectionReason = strings.TrimSpace(reason)
	app.ProcessedBy = &actor.ID
	app.ProcessedAt = &now
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, err
	}

	logger.Info("role application rejected", "application_id", app.ID, "user_id", applicant.ID, "by", actor.ID)
	s.notify(func() error { return s.email.SendRoleRejected(applicant, app.Role, app.RejectionReason) })
	return app, nil
}

// MarkUnderReview moves a pending application into manual review.
func (s *RoleService) MarkUnderReview(ctx context.Context, actorID, applicationID int32) (*domain.RoleApplication, error) {
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeAdmin(actor); err != nil {
		return nil, err
	}

	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusPending {
		return app, ErrInvalidTransition
	}

	app.Status = domain.ApplicationStatusUnderReview
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Suspend pauses a role. days == nil suspends indefinitely; otherwise
// the role resumes on its own once the window elapses.
func (s *RoleService) Suspend(ctx context.Context, actorID, targetID int32, role domain.Role, days *int32, reason string) (*domain.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if days != nil && (*days < 1 || *days > maxSuspensionDays) {
		return nil, fmt.Errorf("%w: suspension days must be between 1 and %d", ErrValidation, maxSuspensionDays)
	}

	actor, target, err := s.loadActorAndTarget(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeRoleAction(actor, target); err != nil {
		return nil, err
	}

	state := target.RoleState(role)
	switch state.Status {
	case domain.RoleStatusSuspended:
		return target, ErrAlreadyProcessed
	case domain.RoleStatusActive:
	default:
		return target, ErrInvalidTransition
	}

	now := s.now()
	next := domain.RoleState{
		Status:           domain.RoleStatusSuspended,
		SuspendedAt:      &now,
		SuspendedBy:      &actor.ID,
		SuspensionReason: strings.TrimSpace(reason),
	}
	if days != nil {
		until := now.AddDate(0, 0, int(*days))
		next.SuspendedUntil = &until
	}

	if err := s.users.UpdateRoleState(ctx, target.ID, role, next); err != nil {
		return nil, err
	}
	target.SetRoleState(role, next)

	logger.Info("role suspended", "user_id", target.ID, "role", role, "by", actor.ID, "until", next.SuspendedUntil)
	s.notify(func() error {
		return s.email.SendRoleSuspended(target, role, next.SuspendedUntil, next.SuspensionReason)
	})
	return target, nil
}

// Reactivate lifts a suspension early. Applying it to a role that is
// not suspended is a no-op.
func (s *RoleService) Reactivate(ctx context.Context, actorID, targetID int32, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	actor, target, err := s.loadActorAndTarget(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeRoleAction(actor, target); err != nil {
		return nil, err
	}

	if target.RoleState(role).Status != domain.RoleStatusSuspended {
		return target, ErrInvalidTransition
	}

	next := domain.ActiveRoleState()
	if err := s.users.UpdateRoleState(ctx, target.ID, role, next); err != nil {
		return nil, err
	}
	target.SetRoleState(role, next)

	logger.Info("role reactivated", "user_id", target.ID, "role", role, "by", actor.ID)
	s.notify(func() error { return s.email.SendRoleReactivated(target, role) })
	return target, nil
}

// Revoke permanently removes a held role. The user may re-apply from
// scratch later; their application history is untouched.
func (s *RoleService) Revoke(ctx context.Context, actorID, targetID int32, role domain.Role, reason string) (*domain.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	actor, target, err := s.loadActorAndTarget(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeRoleAction(actor, target); err != nil {
		return nil, err
	}

	state := target.RoleState(role)
	if state.Status == domain.RoleStatusRevoked {
		return target, ErrAlreadyProcessed
	}
	if !state.Held() {
		return target, ErrInvalidTransition
	}

	next := domain.RoleState{
		Status:           domain.RoleStatusRevoked,
		SuspensionReason: strings.TrimSpace(reason),
	}
	if err := s.users.UpdateRoleState(ctx, target.ID, role, next); err != nil {
		return nil, err
	}
	target.SetRoleState(role, next)

	switch role {
	case domain.RoleOrganizer:
		target.IsStaff = false
		if err := s.users.Update(ctx, target); err != nil {
			return nil, err
		}
		if err := s.organizerProfiles.DeleteByUserID(ctx, target.ID); err != nil {
			return nil, err
		}
	case domain.RoleSupplier:
		if err := s.demoteSupplierProfile(ctx, target.ID); err != nil {
			return nil, err
		}
	}

	logger.Info("role revoked", "user_id", target.ID, "role", role, "by", actor.ID)
	s.notify(func() error { return s.email.SendRoleRevoked(target, role, next.SuspensionReason) })
	return target, nil
}

// Promote grants a role directly without an application. Superusers
// only; used for bootstrapping and support escalations.
func (s *RoleService) Promote(ctx context.Context, actorID, targetID int32, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	actor, target, err := s.loadActorAndTarget(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizePromotion(actor); err != nil {
		return nil, err
	}
	if target.IsSuperuser {
		return nil, ErrProtectedAccount
	}
	if target.RoleState(role).Status == domain.RoleStatusActive {
		return target, ErrAlreadyProcessed
	}

	if err := s.grantRole(ctx, target, role); err != nil {
		return nil, err
	}

	logger.Info("role granted directly", "user_id", target.ID, "role", role, "by", actor.ID)
	s.notify(func() error { return s.email.SendRoleApproved(target, role) })
	return target, nil
}

// ActivateAccount re-enables a deactivated account. Role states are
// left exactly as they were; a suspended organizer stays suspended.
func (s *RoleService) ActivateAccount(ctx context.Context, actorID, targetID int32) (*domain.User, error) {
	actor, target, err := s.loadActorAndTarget(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeRoleAction(actor, target); err != nil {
		return nil, err
	}
	if target.IsActive {
		return target, ErrAlreadyProcessed
	}

	if err := s.users.SetActive(ctx, target.ID, true); err != nil {
		return nil, err
	}
	target.IsActive = true
	logger.Info("account activated", "user_id", target.ID, "by", actor.ID)
	return target, nil
}

// DeactivateAccount disables login and permanently suspends every
// held role, so reactivating the account later does not quietly hand
// the roles back. Lifting those suspensions takes an explicit
// Reactivate per role.
func (s *RoleService) DeactivateAccount(ctx context.Context, actorID, targetID int32, reason string) (*domain.User, error) {
	actor, target, err := s.loadActorAndTarget(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AuthorizeRoleAction(actor, target); err != nil {
		return nil, err
	}
	if !target.IsActive {
		return target, ErrAlreadyProcessed
	}

	suspensionReason := "account deactivated"
	if reason = strings.TrimSpace(reason); reason != "" {
		suspensionReason = "account deactivated: " + reason
	}
	for _, role := range []domain.Role{domain.RoleOrganizer, domain.RoleSupplier} {
		state := target.RoleState(role)
		if state.Status != domain.RoleStatusActive {
			continue
		}
		next := domain.RoleState{
			Status:           domain.RoleStatusSuspended,
			SuspensionReason: suspensionReason,
		}
		if err := s.users.UpdateRoleState(ctx, target.ID, role, next); err != nil {
			return nil, err
		}
		target.SetRoleState(role, next)
	}

	if err := s.users.SetActive(ctx, target.ID, false); err != nil {
		return nil, err
	}
	target.IsActive = false
	logger.Info("account deactivated", "user_id", target.ID, "by", actor.ID)
	return target, nil
}

// Eligibility reports which roles the user holds and which they may
// still apply for.
func (s *RoleService) Eligibility(ctx context.Context, userID int32) (*domain.RoleEligibility, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pendingOrganizer, err := s.applications.HasPending(ctx, userID, domain.RoleOrganizer)
	if err != nil {
		return nil, err
	}
	pendingSupplier, err := s.applications.HasPending(ctx, userID, domain.RoleSupplier)
	if err != nil {
		return nil, err
	}

	now := s.now()
	organizerHeld := user.Organizer.Held()
	supplierHeld := user.Supplier.Held()
	return &domain.RoleEligibility{
		IsOrganizer:       user.IsOrganizerActive(now),
		IsSupplier:        user.IsSupplierActive(now),
		PendingOrganizer:  pendingOrganizer,
		PendingSupplier:   pendingSupplier,
		CanApplyOrganizer: user.IsActive && !organizerHeld && !pendingOrganizer,
		CanApplySupplier:  user.IsActive && !supplierHeld && !pendingSupplier,
	}, nil
}

func (s *RoleService) GetApplication(ctx context.Context, actorID, applicationID int32) (*domain.RoleApplication, error) {
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if actor.ID != app.UserID {
		if err := s.policy.AuthorizeAdmin(actor); err != nil {
			return nil, err
		}
	}
	return app, nil
}

func (s *RoleService) ListApplications(ctx context.Context, actorID int32, filter repository.ApplicationListFilter, page, pageSize int32) ([]domain.RoleApplication, int32, error) {
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.policy.AuthorizeAdmin(actor); err != nil {
		return nil, 0, err
	}
	return s.applications.List(ctx, filter, page, normalizePageSize(pageSize))
}

func (s *RoleService) ListUsers(ctx context.Context, actorID int32, filter repository.UserListFilter, page, pageSize int32) ([]domain.User, int32, error) {
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.policy.AuthorizeAdmin(actor); err != nil {
		return nil, 0, err
	}
	return s.users.List(ctx, filter, page, normalizePageSize(pageSize))
}

// SweepExpiredSuspensions promotes every timed suspension whose window
// has elapsed back to active. The nightly job calls this; reads never
// mutate state, so the sweep is the only writer.
func (s *RoleService) SweepExpiredSuspensions(ctx context.Context) (int64, error) {
	return s.users.SweepExpiredSuspensions(ctx, s.now())
}

// FollowOrganizer subscribes the actor to an organizer's profile by
// slug. Following twice is harmless.
func (s *RoleService) FollowOrganizer(ctx context.Context, actorID int32, organizerSlug string) error {
	profile, err := s.organizerProfiles.GetBySlug(ctx, organizerSlug)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if profile.UserID == actorID {
		return fmt.Errorf("%w: cannot follow yourself", ErrValidation)
	}
	return s.follows.Create(ctx, &domain.Follow{FollowerID: actorID, OrganizerID: profile.ID})
}

func (s *RoleService) UnfollowOrganizer(ctx context.Context, actorID int32, organizerSlug string) error {
	profile, err := s.organizerProfiles.GetBySlug(ctx, organizerSlug)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.follows.Delete(ctx, actorID, profile.ID)
}

// SupplierProfileBySlug resolves a public supplier page.
func (s *RoleService) SupplierProfileBySlug(ctx context.Context, slug string) (*domain.SupplierProfile, error) {
	profile, err := s.supplierProfiles.GetBySlug(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !profile.IsPublic {
		return nil, ErrNotFound
	}
	return profile, nil
}

// ListSupplierProfiles is the management list of supplier companies.
func (s *RoleService) ListSupplierProfiles(ctx context.Context, actorID int32, status domain.SupplierStatus, search string, page, pageSize int32) ([]domain.SupplierProfile, int32, error) {
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.policy.AuthorizeAdmin(actor); err != nil {
		return nil, 0, err
	}
	return s.supplierProfiles.List(ctx, status, search, page, normalizePageSize(pageSize))
}

// OrganizerProfileBySlug resolves a public organizer page.
func (s *RoleService) OrganizerProfileBySlug(ctx context.Context, slug string) (*domain.OrganizerProfile, error) {
	profile, err := s.organizerProfiles.GetBySlug(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !profile.IsPublic {
		return nil, ErrNotFound
	}
	return profile, nil
}

// grantRole makes the role active and materializes its profile.
func (s *RoleService) grantRole(ctx context.Context, user *domain.User, role domain.Role) error {
	next := domain.ActiveRoleState()
	if err := s.users.UpdateRoleState(ctx, user.ID, role, next); err != nil {
		return err
	}
	user.SetRoleState(role, next)

	switch role {
	case domain.RoleOrganizer:
		if !user.IsStaff {
			user.IsStaff = true
			if err := s.users.Update(ctx, user); err != nil {
				return err
			}
		}
		return s.ensureOrganizerProfile(ctx, user)
	case domain.RoleSupplier:
		return s.approveSupplierProfile(ctx, user)
	}
	return nil
}

func (s *RoleService) ensureOrganizerProfile(ctx context.Context, user *domain.User) error {
	_, err := s.organizerProfiles.GetByUserID(ctx, user.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	slug, err := s.uniqueSlug(ctx, user.DisplayName(), s.organizerProfiles.SlugExists)
	if err != nil {
		return err
	}
	profile := &domain.OrganizerProfile{
		UserID:       user.ID,
		Slug:         slug,
		IsPublic:     true,
		AllowContact: true,
	}
	return s.organizerProfiles.Create(ctx, profile)
}

func (s *RoleService) approveSupplierProfile(ctx context.Context, user *domain.User) error {
	now := s.now()
	profile, err := s.supplierProfiles.GetByUserID(ctx, user.ID)
	if errors.Is(err, sql.ErrNoRows) {
		slug, serr := s.uniqueSlug(ctx, user.DisplayName(), s.supplierProfiles.SlugExists)
		if serr != nil {
			return serr
		}
		profile = &domain.SupplierProfile{
			UserID:      user.ID,
			Slug:        slug,
			CompanyName: user.DisplayName(),
			Status:      domain.SupplierStatusApproved,
			ApprovedAt:  &now,
			IsPublic:    true,
		}
		return s.supplierProfiles.Create(ctx, profile)
	}
	if err != nil {
		return err
	}

	profile.Status = domain.SupplierStatusApproved
	profile.ApprovedAt = &now
	profile.IsPublic = true
	return s.supplierProfiles.Update(ctx, profile)
}

// demoteSupplierProfile resets a revoked supplier's profile to
// pending, as if the approval never happened. The row survives so a
// later re-grant can restore it.
func (s *RoleService) demoteSupplierProfile(ctx context.Context, userID int32) error {
	profile, err := s.supplierProfiles.GetByUserID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	profile.Status = domain.SupplierStatusPending
	profile.ApprovedAt = nil
	profile.IsPublic = false
	return s.supplierProfiles.Update(ctx, profile)
}

func (s *RoleService) uniqueSlug(ctx context.Context, base string, exists func(context.Context, string) (bool, error)) (string, error) {
	slug := utils.Slugify(base)
	if slug == "" {
		slug = "member"
	}
	candidate := slug
	for i := 2; ; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

func (s *RoleService) loadActorAndTarget(ctx context.Context, actorID, targetID int32) (*domain.User, *domain.User, error) {
	actor, err := s.getUser(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	target, err := s.getUser(ctx, targetID)
	if err != nil {
		return nil, nil, err
	}
	return actor, target, nil
}

func (s *RoleService) getUser(ctx context.Context, id int32) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *RoleService) getApplication(ctx context.Context, id int32) (*domain.RoleApplication, error) {
	app, err := s.applications.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return app, err
}

// notify runs a mail send without letting a mail failure fail the
// operation that triggered it.
func (s *RoleService) notify(send func() error) {
	if s.email == nil {
		return
	}
	if err := send(); err != nil {
		logger.Warn("notification email failed", "error", err)
	}
}

func normalizePageSize(pageSize int32) int32 {
	if pageSize < 1 {
		return 20
	}
	if pageSize > 100 {
		return 100
	}
	return pageSize
}
