package domain

import "time"

// Status values as stored after boundary normalization (trimmed, lower-case).
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingRejected  = "rejected"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"

	PaymentPending = "pending"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"

	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

type Booking struct {
	ID             string
	PropertyID     string
	TenantID       string
	OwnerID        string
	Status         string
	PaymentStatus  string
	TenantType     *string
	NumberOfPeople int
	MonthlyRent    float64
	TotalAmount    float64
	CreatedAt      *time.Time
	IsDeleted      bool
}

type Listing struct {
	ID       string
	UserID   string
	Barangay *string
	// AvailabilityStatus is kept as published (free text, inconsistent
	// case/whitespace); the aggregator normalizes it.
	AvailabilityStatus *string
	PropertyType       *string
	MonthlyRent        float64
	PublishedAt        *time.Time
	CreatedAt          *time.Time
	ViewCount          int
}

type User struct {
	ID       string
	Name     *string
	Gender   *string // male|female when known
	Barangay *string
	Roles    []string
}

type OwnerApplication struct {
	UserID     string
	Barangay   *string
	Status     string
	ReviewedAt *time.Time
	CreatedAt  *time.Time
}

// TenantProfile is the secondary gender source consulted when the user
// record carries none.
type TenantProfile struct {
	UserID string
	Gender *string
}

type Inquiry struct {
	ID        string
	ListingID string
	TenantID  string
	CreatedAt *time.Time
}
