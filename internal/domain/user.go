package domain

import "time"

type User struct {
	ID           int32  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`

	// IsStaff marks the organizer capability, IsSuperuser the platform
	// admins. IsActive disables the whole account when false.
	IsStaff     bool `json:"is_staff"`
	IsSuperuser bool `json:"is_superuser"`
	IsActive    bool `json:"is_active"`

	Organizer RoleState `json:"organizer"`
	Supplier  RoleState `json:"supplier"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DisplayName returns the user's name, falling back to the email.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// IsOrganizerActive reports whether the user can act as an organizer at
// the given instant. Pure read: an expired timed suspension counts as
// active without any state mutation.
func (u *User) IsOrganizerActive(now time.Time) bool {
	return u.IsActive && u.IsStaff && u.Organizer.ActiveAt(now)
}

// IsSupplierActive reports whether the user can act as a supplier at
// the given instant.
func (u *User) IsSupplierActive(now time.Time) bool {
	return u.IsActive && u.Supplier.ActiveAt(now)
}

// RoleState returns the state for the given role.
func (u *User) RoleState(role Role) RoleState {
	if role == RoleOrganizer {
		return u.Organizer
	}
	return u.Supplier
}

// SetRoleState replaces the state for the given role.
func (u *User) SetRoleState(role Role, state RoleState) {
	if role == RoleOrganizer {
		u.Organizer = state
	} else {
		u.Supplier = state
	}
}
