package domain

import "time"

// AnalyticsSnapshot is the immutable per-barangay report. It is recomputed on
// every call and has no lifecycle beyond the call that produced it. Consumers
// bind to the fields directly; a failed computation yields ZeroSnapshot, never
// nil, so no consumer needs a null branch.
type AnalyticsSnapshot struct {
	Barangay    string    `json:"barangay"`
	GeneratedAt time.Time `json:"generatedAt"`

	Tenants    GenderBreakdown `json:"tenantDemographics"`
	Owners     GenderBreakdown `json:"ownerDemographics"`
	Properties PropertyStats   `json:"properties"`
	Bookings   BookingStats    `json:"bookings"`
	Rankings   RankingStats    `json:"rankings"`
	Market     MarketStats     `json:"market"`
	Inquiries  InquiryStats    `json:"inquiries"`
}

type GenderBreakdown struct {
	Male       int `json:"male"`
	Female     int `json:"female"`
	Unknown    int `json:"unknown"`
	Total      int `json:"total"`
	MalePct    int `json:"malePct"`
	FemalePct  int `json:"femalePct"`
	UnknownPct int `json:"unknownPct"`
}

// StatusCounts always sums to PropertyStats.Total: every listing lands in
// exactly one bucket, with Unknown catching unrecognized status text.
type StatusCounts struct {
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
	Reserved  int `json:"reserved"`
	Unknown   int `json:"unknown"`
}

type PropertyStats struct {
	Total         int            `json:"totalProperties"`
	StatusCounts  StatusCounts   `json:"statusCounts"`
	AverageRent   float64        `json:"averageRent"`
	PropertyTypes map[string]int `json:"propertyTypes"`
}

type BookingStats struct {
	Total     int `json:"totalBookings"`
	Approved  int `json:"approvedBookings"`
	Pending   int `json:"pendingBookings"`
	Rejected  int `json:"rejectedBookings"`
	Cancelled int `json:"cancelledBookings"`
	Completed int `json:"completedBookings"`
	ThisMonth int `json:"thisMonthBookings"`
	LastMonth int `json:"lastMonthBookings"`
	// GrowthRate is the month-over-month percentage delta, 0 when the
	// previous month had no bookings.
	GrowthRate int `json:"growthRate"`
}

type OwnerActivity struct {
	OwnerID       string  `json:"ownerId"`
	Name          string  `json:"name"`
	PropertyCount int     `json:"propertyCount"`
	BookingCount  int     `json:"bookingCount"`
	Revenue       float64 `json:"revenue"`
}

type TenantActivity struct {
	TenantID     string `json:"tenantId"`
	Name         string `json:"name"`
	BookingCount int    `json:"bookingCount"`
}

type RankingStats struct {
	TopOwners                []OwnerActivity  `json:"topOwners"`
	MostActiveOwners         []OwnerActivity  `json:"mostActiveOwners"`
	MostActiveTenants        []TenantActivity `json:"mostActiveTenants"`
	AverageBookingsPerOwner  float64          `json:"averageBookingsPerOwner"`
	AverageBookingsPerTenant float64          `json:"averageBookingsPerTenant"`
	ConversionRate           int              `json:"conversionRate"`
}

type PriceRange struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

type PropertyTypeStat struct {
	Type        string  `json:"type"`
	Count       int     `json:"count"`
	AverageRent float64 `json:"averageRent"`
}

type MarketStats struct {
	OccupancyRate        int                `json:"occupancyRate"`
	AverageDaysOnMarket  int                `json:"averageDaysOnMarket"`
	PriceRange           PriceRange         `json:"priceRange"`
	PopularPropertyTypes []PropertyTypeStat `json:"popularPropertyTypes"`
}

type InquiryStats struct {
	Total int `json:"total"`
	// Proxied marks totals derived from booking counts because the
	// listing_inquiries collection was absent.
	Proxied bool `json:"proxied"`
}

// ZeroSnapshot is the fail-safe value: identical shape, all numerics zero,
// ranking slices empty but non-nil, type map empty but non-nil.
func ZeroSnapshot(barangay string, at time.Time) AnalyticsSnapshot {
	s := AnalyticsSnapshot{Barangay: barangay, GeneratedAt: at}
	s.Properties.PropertyTypes = map[string]int{}
	s.Rankings.TopOwners = []OwnerActivity{}
	s.Rankings.MostActiveOwners = []OwnerActivity{}
	s.Rankings.MostActiveTenants = []TenantActivity{}
	s.Market.PopularPropertyTypes = []PropertyTypeStat{}
	return s
}
