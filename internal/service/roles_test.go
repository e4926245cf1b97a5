package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jcamiloaa/experienciaas/internal/domain"
)

type roleFixture struct {
	svc               *RoleService
	users             *mockUserRepo
	applications      *mockApplicationRepo
	organizerProfiles *mockOrganizerProfileRepo
	supplierProfiles  *mockSupplierProfileRepo
	follows           *mockFollowRepo
	email             *mockEmailSender
	now               time.Time
}

func newRoleFixture(t *testing.T) *roleFixture {
	t.Helper()
	f := &roleFixture{
		users:             &mockUserRepo{},
		applications:      &mockApplicationRepo{},
		organizerProfiles: &mockOrganizerProfileRepo{},
		supplierProfiles:  &mockSupplierProfileRepo{},
		follows:           &mockFollowRepo{},
		email:             &mockEmailSender{},
		now:               time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewRoleService(f.users, f.applications, f.organizerProfiles, f.supplierProfiles, f.follows, NewPolicy(), f.email)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func activeAdmin() *domain.User {
	return &domain.User{ID: 1, Email: "admin@example.com", IsActive: true, IsStaff: true, IsSuperuser: true}
}

func basicUser(id int32) *domain.User {
	return &domain.User{ID: id, Email: "user@example.com", Name: "Ana Gomez", IsActive: true}
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	f := newRoleFixture(t)
	user := basicUser(7)

	f.users.On("GetByID", mock.Anything, int32(7)).Return(user, nil)
	f.applications.On("HasPending", mock.Anything, int32(7), domain.RoleOrganizer).Return(false, nil)
	f.applications.On("Create", mock.Anything, mock.MatchedBy(func(app *domain.RoleApplication) bool {
		return app.UserID == 7 &&
			app.Role == domain.RoleOrganizer &&
			app.Status == domain.ApplicationStatusPending &&
			app.Motivation == "I run meetups"
	})).Return(nil)
	f.email.On("SendApplicationReceived", user, domain.RoleOrganizer).Return(nil)

	app, err := f.svc.Apply(context.Background(), 7, domain.RoleOrganizer, "  I run meetups  ", "two years")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	f.applications.AssertExpectations(t)
	f.email.AssertExpectations(t)
}

func TestApplyRejectsDuplicatePending(t *testing.T) {
	f := newRoleFixture(t)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(basicUser(7), nil)
	f.applications.On("HasPending", mock.Anything, int32(7), domain.RoleSupplier).Return(true, nil)

	_, err := f.svc.Apply(context.Background(), 7, domain.RoleSupplier, "motivation", "")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	f.applications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestApplyRejectsHeldRole(t *testing.T) {
	f := newRoleFixture(t)
	user := basicUser(7)
	user.Organizer = domain.ActiveRoleState()
	f.users.On("GetByID", mock.Anything, int32(7)).Return(user, nil)

	_, err := f.svc.Apply(context.Background(), 7, domain.RoleOrganizer, "motivation", "")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestApplyRequiresMotivation(t *testing.T) {
	f := newRoleFixture(t)
	_, err := f.svc.Apply(context.Background(), 7, domain.RoleOrganizer, "   ", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApproveGrantsOrganizerRole(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	applicant := basicUser(7)
	app := &domain.RoleApplication{ID: 3, UserID: 7, Role: domain.RoleOrganizer, Status: domain.ApplicationStatusPending}

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(applicant, nil)
	f.applications.On("GetByID", mock.Anything, int32(3)).Return(app, nil)
	f.users.On("UpdateRoleState", mock.Anything, int32(7), domain.RoleOrganizer, mock.MatchedBy(func(state domain.RoleState) bool {
		return state.Status == domain.RoleStatusActive && state.SuspendedUntil == nil
	})).Return(nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 7 && u.IsStaff
	})).Return(nil)
	f.organizerProfiles.On("GetByUserID", mock.Anything, int32(7)).Return(nil, sql.ErrNoRows)
	f.organizerProfiles.On("SlugExists", mock.Anything, "ana-gomez").Return(false, nil)
	f.organizerProfiles.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.OrganizerProfile) bool {
		return p.UserID == 7 && p.Slug == "ana-gomez" && p.IsPublic
	})).Return(nil)
	f.applications.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.RoleApplication) bool {
		return a.Status == domain.ApplicationStatusApproved && a.ProcessedBy != nil && *a.ProcessedBy == 1 && a.ProcessedAt != nil
	})).Return(nil)
	f.email.On("SendRoleApproved", applicant, domain.RoleOrganizer).Return(nil)

	approved, err := f.svc.Approve(context.Background(), 1, 3, "looks solid")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusApproved, approved.Status)
	assert.Equal(t, "looks solid", approved.AdminNotes)
	f.users.AssertExpectations(t)
	f.organizerProfiles.AssertExpectations(t)
}

func TestApproveTakenSlugGetsSuffix(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	applicant := basicUser(7)
	app := &domain.RoleApplication{ID: 3, UserID: 7, Role: domain.RoleOrganizer, Status: domain.ApplicationStatusPending}

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(applicant, nil)
	f.applications.On("GetByID", mock.Anything, int32(3)).Return(app, nil)
	f.users.On("UpdateRoleState", mock.Anything, int32(7), domain.RoleOrganizer, mock.Anything).Return(nil)
	f.users.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.organizerProfiles.On("GetByUserID", mock.Anything, int32(7)).Return(nil, sql.ErrNoRows)
	f.organizerProfiles.On("SlugExists", mock.Anything, "ana-gomez").Return(true, nil)
	f.organizerProfiles.On("SlugExists", mock.Anything, "ana-gomez-2").Return(false, nil)
	f.organizerProfiles.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.OrganizerProfile) bool {
		return p.Slug == "ana-gomez-2"
	})).Return(nil)
	f.applications.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.email.On("SendRoleApproved", applicant, domain.RoleOrganizer).Return(nil)

	_, err := f.svc.Approve(context.Background(), 1, 3, "")
	require.NoError(t, err)
	f.organizerProfiles.AssertExpectations(t)
}

func TestApproveAlreadyApprovedIsNoOp(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	applicant := basicUser(7)
	app := &domain.RoleApplication{ID: 3, UserID: 7, Role: domain.RoleOrganizer, Status: domain.ApplicationStatusApproved}

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(applicant, nil)
	f.applications.On("GetByID", mock.Anything, int32(3)).Return(app, nil)

	returned, err := f.svc.Approve(context.Background(), 1, 3, "")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.Equal(t, app, returned)
	f.users.AssertNotCalled(t, "UpdateRoleState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.applications.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApproveProtectsSuperusers(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	root := basicUser(9)
	root.IsSuperuser = true
	app := &domain.RoleApplication{ID: 3, UserID: 9, Role: domain.RoleOrganizer, Status: domain.ApplicationStatusPending}

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(9)).Return(root, nil)
	f.applications.On("GetByID", mock.Anything, int32(3)).Return(app, nil)

	_, err := f.svc.Approve(context.Background(), 1, 3, "")
	assert.ErrorIs(t, err, ErrProtectedAccount)
}

func TestRejectRequiresReason(t *testing.T) {
	f := newRoleFixture(t)
	_, err := f.svc.Reject(context.Background(), 1, 3, "  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRejectRecordsReason(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	applicant := basicUser(7)
	app := &domain.RoleApplication{ID: 3, UserID: 7, Role: domain.RoleSupplier, Status: domain.ApplicationStatusUnderReview}

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(applicant, nil)
	f.applications.On("GetByID", mock.Anything, int32(3)).Return(app, nil)
	f.applications.On("Update", mock.Anything, mock.MatchedBy(func(a *domain.RoleApplication) bool {
		return a.Status == domain.ApplicationStatusRejected && a.RejectionReason == "incomplete portfolio"
	})).Return(nil)
	f.email.On("SendRoleRejected", applicant, domain.RoleSupplier, "incomplete portfolio").Return(nil)

	rejected, err := f.svc.Reject(context.Background(), 1, 3, "incomplete portfolio")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusRejected, rejected.Status)
}

func TestSuspendValidatesDayRange(t *testing.T) {
	f := newRoleFixture(t)
	for _, days := range []int32{0, -1, 366} {
		d := days
		_, err := f.svc.Suspend(context.Background(), 1, 7, domain.RoleOrganizer, &d, "spam")
		assert.ErrorIs(t, err, ErrValidation, "days=%d", days)
	}
}

func TestSuspendTimedSetsWindow(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	target := basicUser(7)
	target.IsStaff = true
	target.Organizer = domain.ActiveRoleState()

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)

	wantUntil := f.now.AddDate(0, 0, 7)
	f.users.On("UpdateRoleState", mock.Anything, int32(7), domain.RoleOrganizer, mock.MatchedBy(func(state domain.RoleState) bool {
		return state.Status == domain.RoleStatusSuspended &&
			state.SuspendedUntil != nil && state.SuspendedUntil.Equal(wantUntil) &&
			state.SuspendedBy != nil && *state.SuspendedBy == 1 &&
			state.SuspensionReason == "spam listings"
	})).Return(nil)
	f.email.On("SendRoleSuspended", target, domain.RoleOrganizer, mock.Anything, "spam listings").Return(nil)

	days := int32(7)
	updated, err := f.svc.Suspend(context.Background(), 1, 7, domain.RoleOrganizer, &days, "spam listings")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStatusSuspended, updated.Organizer.Status)
	assert.False(t, updated.IsOrganizerActive(f.now))
	f.users.AssertExpectations(t)
}

func TestSuspendIndefiniteHasNoDeadline(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	target := basicUser(7)
	target.Supplier = domain.ActiveRoleState()

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)
	f.users.On("UpdateRoleState", mock.Anything, int32(7), domain.RoleSupplier, mock.MatchedBy(func(state domain.RoleState) bool {
		return state.Status == domain.RoleStatusSuspended && state.SuspendedUntil == nil
	})).Return(nil)
	f.email.On("SendRoleSuspended", target, domain.RoleSupplier, (*time.Time)(nil), "fraud").Return(nil)

	updated, err := f.svc.Suspend(context.Background(), 1, 7, domain.RoleSupplier, nil, "fraud")
	require.NoError(t, err)
	assert.Nil(t, updated.Supplier.SuspendedUntil)
}

func TestSuspendAlreadySuspendedIsNoOp(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	target := basicUser(7)
	target.Organizer = domain.RoleState{Status: domain.RoleStatusSuspended}

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)

	_, err := f.svc.Suspend(context.Background(), 1, 7, domain.RoleOrganizer, nil, "again")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	f.users.AssertNotCalled(t, "UpdateRoleState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSuspendWithoutRoleIsInvalid(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	target := basicUser(7)

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)

	_, err := f.svc.Suspend(context.Background(), 1, 7, domain.RoleOrganizer, nil, "never held")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdminCannotTargetThemselves(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)

	_, err := f.svc.Suspend(context.Background(), 1, 1, domain.RoleOrganizer, nil, "self")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestStaffWithoutSuperuserCannotManageRoles(t *testing.T) {
	f := newRoleFixture(t)
	organizer := basicUser(1)
	organizer.IsStaff = true
	organizer.Organizer = domain.ActiveRoleState()
	target := basicUser(7)
	target.Organizer = domain.ActiveRoleState()

	f.users.On("GetByID", mock.Anything, int32(1)).Return(organizer, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)

	days := int32(7)
	_, err := f.svc.Suspend(context.Background(), 1, 7, domain.RoleOrganizer, &days, "spam")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = f.svc.Revoke(context.Background(), 1, 7, domain.RoleOrganizer, "spam")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	f.users.AssertNotCalled(t, "UpdateRoleState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReactivateLiftsSuspension(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	target := basicUser(7)
	until := f.now.AddDate(0, 0, 30)
	target.Organizer = domain.RoleState{Status: domain.RoleStatusSuspended, SuspendedUntil: &until}

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)
	f.users.On("UpdateRoleState", mock.Anything, int32(7), domain.RoleOrganizer, mock.MatchedBy(func(state domain.RoleState) bool {
		return state.Status == domain.RoleStatusActive && state.SuspendedUntil == nil && state.SuspensionReason == ""
	})).Return(nil)
	f.email.On("SendRoleReactivated", target, domain.RoleOrganizer).Return(nil)

	updated, err := f.svc.Reactivate(context.Background(), 1, 7, domain.RoleOrganizer)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStatusActive, updated.Organizer.Status)
}

func TestReactivateActiveRoleIsInvalid(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	target := basicUser(7)
	target.Organizer = domain.ActiveRoleState()

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)

	_, err := f.svc.Reactivate(context.Background(), 1, 7, domain.RoleOrganizer)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRevokeOrganizerClearsStaffAndProfile(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	target := basicUser(7)
	target.IsStaff = true
	target.Organizer = domain.ActiveRoleState()

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)
	f.users.On("UpdateRoleState", mock.Anything, int32(7), domain.RoleOrganizer, mock.MatchedBy(func(state domain.RoleState) bool {
		return state.Status == domain.RoleStatusRevoked
	})).Return(nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 7 && !u.IsStaff
	})).Return(nil)
	f.organizerProfiles.On("DeleteByUserID", mock.Anything, int32(7)).Return(nil)
	f.email.On("SendRoleRevoked", target, domain.RoleOrganizer, "policy violation").Return(nil)

	updated, err := f.svc.Revoke(context.Background(), 1, 7, domain.RoleOrganizer, "policy violation")
	require.NoError(t, err)
	assert.False(t, updated.IsStaff)
	assert.Equal(t, domain.RoleStatusRevoked, updated.Organizer.Status)
	f.organizerProfiles.AssertExpectations(t)
}

func TestRevokeSupplierResetsProfileToPending(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	target := basicUser(7)
	target.Supplier = domain.RoleState{Status: domain.RoleStatusSuspended}
	approvedAt := f.now.AddDate(0, -2, 0)
	profile := &domain.SupplierProfile{ID: 4, UserID: 7, Status: domain.SupplierStatusApproved, ApprovedAt: &approvedAt, IsPublic: true}

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)
	f.users.On("UpdateRoleState", mock.Anything, int32(7), domain.RoleSupplier, mock.Anything).Return(nil)
	f.supplierProfiles.On("GetByUserID", mock.Anything, int32(7)).Return(profile, nil)
	f.supplierProfiles.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.SupplierProfile) bool {
		return p.Status == domain.SupplierStatusPending && p.ApprovedAt == nil && !p.IsPublic
	})).Return(nil)
	f.email.On("SendRoleRevoked", target, domain.RoleSupplier, "").Return(nil)

	_, err := f.svc.Revoke(context.Background(), 1, 7, domain.RoleSupplier, "")
	require.NoError(t, err)
	f.supplierProfiles.AssertExpectations(t)
}

func TestRevokeAlreadyRevokedIsNoOp(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	target := basicUser(7)
	target.Organizer = domain.RoleState{Status: domain.RoleStatusRevoked}

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)

	_, err := f.svc.Revoke(context.Background(), 1, 7, domain.RoleOrganizer, "")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestPromoteRequiresSuperuser(t *testing.T) {
	f := newRoleFixture(t)
	organizer := basicUser(1)
	organizer.IsStaff = true
	target := basicUser(7)

	f.users.On("GetByID", mock.Anything, int32(1)).Return(organizer, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)

	_, err := f.svc.Promote(context.Background(), 1, 7, domain.RoleSupplier)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestPromoteGrantsSupplierProfile(t *testing.T) {
	f := newRoleFixture(t)
	root := activeAdmin()
	target := basicUser(7)

	f.users.On("GetByID", mock.Anything, int32(1)).Return(root, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)
	f.users.On("UpdateRoleState", mock.Anything, int32(7), domain.RoleSupplier, mock.Anything).Return(nil)
	f.supplierProfiles.On("GetByUserID", mock.Anything, int32(7)).Return(nil, sql.ErrNoRows)
	f.supplierProfiles.On("SlugExists", mock.Anything, "ana-gomez").Return(false, nil)
	f.supplierProfiles.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.SupplierProfile) bool {
		return p.UserID == 7 && p.Status == domain.SupplierStatusApproved && p.ApprovedAt != nil && p.IsPublic
	})).Return(nil)
	f.email.On("SendRoleApproved", target, domain.RoleSupplier).Return(nil)

	updated, err := f.svc.Promote(context.Background(), 1, 7, domain.RoleSupplier)
	require.NoError(t, err)
	assert.True(t, updated.IsSupplierActive(f.now))
	f.supplierProfiles.AssertExpectations(t)
}

func TestDeactivateAndActivateAccount(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	target := basicUser(7)

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)
	f.users.On("SetActive", mock.Anything, int32(7), false).Return(nil)

	updated, err := f.svc.DeactivateAccount(context.Background(), 1, 7, "")
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	f.users.On("SetActive", mock.Anything, int32(7), true).Return(nil)
	updated, err = f.svc.ActivateAccount(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
}

func TestDeactivateAccountSuspendsHeldRoles(t *testing.T) {
	f := newRoleFixture(t)
	admin := activeAdmin()
	target := basicUser(7)
	target.Organizer = domain.ActiveRoleState()
	target.Supplier = domain.ActiveRoleState()

	f.users.On("GetByID", mock.Anything, int32(1)).Return(admin, nil)
	f.users.On("GetByID", mock.Anything, int32(7)).Return(target, nil)
	suspended := func(state domain.RoleState) bool {
		return state.Status == domain.RoleStatusSuspended &&
			state.SuspendedUntil == nil &&
			state.SuspensionReason == "account deactivated: fraud"
	}
	f.users.On("UpdateRoleState", mock.Anything, int32(7), domain.RoleOrganizer, mock.MatchedBy(suspended)).Return(nil)
	f.users.On("UpdateRoleState", mock.Anything, int32(7), domain.RoleSupplier, mock.MatchedBy(suspended)).Return(nil)
	f.users.On("SetActive", mock.Anything, int32(7), false).Return(nil)

	updated, err := f.svc.DeactivateAccount(context.Background(), 1, 7, "  fraud ")
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, domain.RoleStatusSuspended, updated.Organizer.Status)
	assert.Equal(t, domain.RoleStatusSuspended, updated.Supplier.Status)
	f.users.AssertExpectations(t)

	// Turning the account back on must not quietly return the roles.
	f.users.On("SetActive", mock.Anything, int32(7), true).Return(nil)
	updated, err = f.svc.ActivateAccount(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
	assert.Equal(t, domain.RoleStatusSuspended, updated.Organizer.Status)
	assert.Equal(t, domain.RoleStatusSuspended, updated.Supplier.Status)
}

func TestEligibilityReflectsHeldAndPending(t *testing.T) {
	f := newRoleFixture(t)
	user := basicUser(7)
	user.IsStaff = true
	user.Organizer = domain.ActiveRoleState()

	f.users.On("GetByID", mock.Anything, int32(7)).Return(user, nil)
	f.applications.On("HasPending", mock.Anything, int32(7), domain.RoleOrganizer).Return(false, nil)
	f.applications.On("HasPending", mock.Anything, int32(7), domain.RoleSupplier).Return(true, nil)

	elig, err := f.svc.Eligibility(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, elig.IsOrganizer)
	assert.False(t, elig.IsSupplier)
	assert.False(t, elig.CanApplyOrganizer)
	assert.False(t, elig.CanApplySupplier)
	assert.True(t, elig.PendingSupplier)
}

func TestSweepExpiredSuspensionsDelegates(t *testing.T) {
	f := newRoleFixture(t)
	f.users.On("SweepExpiredSuspensions", mock.Anything, f.now).Return(int64(3), nil)

	n, err := f.svc.SweepExpiredSuspensions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestFollowOrganizerBySlug(t *testing.T) {
	f := newRoleFixture(t)
	profile := &domain.OrganizerProfile{ID: 12, UserID: 3, Slug: "ana-gomez", IsPublic: true}

	f.organizerProfiles.On("GetBySlug", mock.Anything, "ana-gomez").Return(profile, nil)
	f.follows.On("Create", mock.Anything, mock.MatchedBy(func(fl *domain.Follow) bool {
		return fl.FollowerID == 7 && fl.OrganizerID == 12
	})).Return(nil)

	require.NoError(t, f.svc.FollowOrganizer(context.Background(), 7, "ana-gomez"))
	f.follows.AssertExpectations(t)
}

func TestFollowOwnProfileRejected(t *testing.T) {
	f := newRoleFixture(t)
	profile := &domain.OrganizerProfile{ID: 12, UserID: 7, Slug: "ana-gomez"}
	f.organizerProfiles.On("GetBySlug", mock.Anything, "ana-gomez").Return(profile, nil)

	err := f.svc.FollowOrganizer(context.Background(), 7, "ana-gomez")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrganizerProfileHiddenWhenPrivate(t *testing.T) {
	f := newRoleFixture(t)
	profile := &domain.OrganizerProfile{ID: 12, Slug: "ana-gomez", IsPublic: false}
	f.organizerProfiles.On("GetBySlug", mock.Anything, "ana-gomez").Return(profile, nil)

	_, err := f.svc.OrganizerProfileBySlug(context.Background(), "ana-gomez")
	assert.ErrorIs(t, err, ErrNotFound)
}
