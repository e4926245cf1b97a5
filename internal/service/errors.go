package service

import "errors"

var (
	// ErrNotFound maps to 404.
	ErrNotFound = errors.New("resource not found")

	// ErrNotAuthorized maps to 403: the actor lacks the privilege for
	// the attempted action.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrProtectedAccount maps to 403: superusers can never be targeted
	// by role or account actions.
	ErrProtectedAccount = errors.New("cannot modify a protected account")

	// ErrValidation maps to 400.
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyProcessed signals an action that was already applied.
	// Handlers report it as a warning, not a failure.
	ErrAlreadyProcessed = errors.New("already processed")

	// ErrInvalidTransition signals an action that does not apply to the
	// target's current state, for example reactivating a role that is
	// not suspended. Like ErrAlreadyProcessed it is a no-op, not a
	// failure.
	ErrInvalidTransition = errors.New("action does not apply to current state")

	// ErrInvalidCredentials maps to 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken maps to 409.
	ErrEmailTaken = errors.New("email already registered")
)
