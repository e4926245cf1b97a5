package domain

import "time"

// OrganizerProfile is the public profile attached to a staff user.
// Follower and event counters are computed on demand, not cached.
type OrganizerProfile struct {
	ID     int32  `json:"id"`
	UserID int32  `json:"user_id"`
	Slug   string `json:"slug"`

	Bio      string `json:"bio"`
	Website  string `json:"website"`
	Phone    string `json:"phone"`
	Location string `json:"location"`

	FacebookURL  string `json:"facebook_url"`
	TwitterURL   string `json:"twitter_url"`
	InstagramURL string `json:"instagram_url"`
	LinkedinURL  string `json:"linkedin_url"`

	IsPublic     bool `json:"is_public"`
	AllowContact bool `json:"allow_contact"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SupplierStatus string

const (
	SupplierStatusPending   SupplierStatus = "pending"
	SupplierStatusApproved  SupplierStatus = "approved"
	SupplierStatusRejected  SupplierStatus = "rejected"
	SupplierStatusSuspended SupplierStatus = "suspended"
)

// SupplierProfile is the sponsorship-capable company profile. The slug
// derives from the company name and is unique.
type SupplierProfile struct {
	ID     int32  `json:"id"`
	UserID int32  `json:"user_id"`
	Slug   string `json:"slug"`

	CompanyName        string         `json:"company_name"`
	CompanyDescription string         `json:"company_description"`
	Industry           string         `json:"industry"`
	Website            string         `json:"website"`
	Status             SupplierStatus `json:"status"`

	ApplicationReason string     `json:"application_reason,omitempty"`
	AdminNotes        string     `json:"admin_notes,omitempty"`
	RejectionReason   string     `json:"rejection_reason,omitempty"`
	ReviewedBy        *int32     `json:"reviewed_by,omitempty"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`

	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Follow links a follower user to an organizer profile.
type Follow struct {
	ID          int32     `json:"id"`
	FollowerID  int32     `json:"follower_id"`
	OrganizerID int32     `json:"organizer_id"`
	CreatedAt   time.Time `json:"created_at"`
}
