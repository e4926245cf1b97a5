package domain

import "time"

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusPublished EventStatus = "published"
	EventStatusSoldOut   EventStatus = "sold_out"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

type Event struct {
	ID          int32  `json:"id"`
	OrganizerID int32  `json:"organizer_id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Category    string `json:"category"`
	City        string `json:"city"`

	Status     EventStatus `json:"status"`
	StartDate  time.Time   `json:"start_date"`
	EndDate    *time.Time  `json:"end_date,omitempty"`
	PriceCents int64       `json:"price_cents"`
	Capacity   int32       `json:"capacity"`

	// Views is a denormalized counter bumped on each tracked view; the
	// authoritative count lives in the event_views log table.
	Views int32 `json:"views"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Listable reports whether the event shows up in public listings.
func (e *Event) Listable() bool {
	return e.Status == EventStatusPublished || e.Status == EventStatusSoldOut
}

type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusConfirmed TicketStatus = "confirmed"
	TicketStatusCancelled TicketStatus = "cancelled"
)

// Ticket is an attendee registration. AmountPaidCents is fixed-point
// currency; revenue aggregates sum confirmed tickets only.
type Ticket struct {
	ID              int32        `json:"id"`
	EventID         int32        `json:"event_id"`
	UserID          int32        `json:"user_id"`
	Status          TicketStatus `json:"status"`
	AmountPaidCents int64        `json:"amount_paid_cents"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type SponsorshipStatus string

const (
	SponsorshipStatusPending  SponsorshipStatus = "pending"
	SponsorshipStatusApproved SponsorshipStatus = "approved"
	SponsorshipStatusRejected SponsorshipStatus = "rejected"
)

// SponsorshipApplication is a supplier's offer to sponsor an event.
type SponsorshipApplication struct {
	ID                 int32             `json:"id"`
	EventID            int32             `json:"event_id"`
	SupplierProfileID  int32             `json:"supplier_profile_id"`
	CompanyName        string            `json:"company_name"`
	Message            string            `json:"message"`
	AmountOfferedCents int64             `json:"amount_offered_cents"`
	Status             SponsorshipStatus `json:"status"`
	ReviewedBy         *int32            `json:"reviewed_by,omitempty"`
	ReviewedAt         *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}
