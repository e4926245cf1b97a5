package domain

import "time"

type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleSupplier  Role = "supplier"
)

// Valid reports whether r is one of the grantable roles.
func (r Role) Valid() bool {
	return r == RoleOrganizer || r == RoleSupplier
}

type RoleStatus string

const (
	RoleStatusNone      RoleStatus = "none"
	RoleStatusActive    RoleStatus = "active"
	RoleStatusSuspended RoleStatus = "suspended"
	RoleStatusRevoked   RoleStatus = "revoked"
)

// RoleState is the discriminated per-role state stored on the user row.
// Status is the discriminant; while Status is "suspended", a nil
// SuspendedUntil means the suspension is permanent.
type RoleState struct {
	Status           RoleStatus `json:"status"`
	SuspendedUntil   *time.Time `json:"suspended_until,omitempty"`
	SuspendedAt      *time.Time `json:"suspended_at,omitempty"`
	SuspendedBy      *int32     `json:"suspended_by,omitempty"`
	SuspensionReason string     `json:"suspension_reason,omitempty"`
}

// ActiveRoleState returns the state of a freshly granted role.
func ActiveRoleState() RoleState {
	return RoleState{Status: RoleStatusActive}
}

// ActiveAt reports whether the role is usable at the given instant.
// A timed suspension whose window has passed reads as active; no
// write-back happens on read.
func (s RoleState) ActiveAt(now time.Time) bool {
	switch s.Status {
	case RoleStatusActive:
		return true
	case RoleStatusSuspended:
		return s.SuspendedUntil != nil && !now.Before(*s.SuspendedUntil)
	default:
		return false
	}
}

// SuspendedAtTime reports whether the role is under an effective
// suspension at the given instant.
func (s RoleState) SuspendedAtTime(now time.Time) bool {
	return s.Status == RoleStatusSuspended && !s.ActiveAt(now)
}

// Held reports whether the role capability has been granted and not
// revoked, regardless of suspension.
func (s RoleState) Held() bool {
	return s.Status == RoleStatusActive || s.Status == RoleStatusSuspended
}

type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusApproved    ApplicationStatus = "approved"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
)

// RoleApplication is a user's request to be granted a role. Rows are
// never deleted; processed applications remain as audit history.
type RoleApplication struct {
	ID              int32             `json:"id"`
	UserID          int32             `json:"user_id"`
	Role            Role              `json:"role"`
	Motivation      string            `json:"motivation"`
	Experience      string            `json:"experience"`
	Status          ApplicationStatus `json:"status"`
	AdminNotes      string            `json:"admin_notes,omitempty"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	ProcessedBy     *int32            `json:"processed_by,omitempty"`
	ProcessedAt     *time.Time        `json:"processed_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// RoleEligibility is the payload for the role-availability endpoint.
type RoleEligibility struct {
	CanApplyOrganizer bool `json:"can_apply_organizer"`
	CanApplySupplier  bool `json:"can_apply_supplier"`
	IsOrganizer       bool `json:"is_organizer"`
	IsSupplier        bool `json:"is_supplier"`
	PendingOrganizer  bool `json:"pending_organizer"`
	PendingSupplier   bool `json:"pending_supplier"`
}
