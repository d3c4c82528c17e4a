package app

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"upahan/internal/domain"
)

// canonicalType applies the domain alias "Condo" → "Boarding House" so the
// two labels merge into one bucket instead of producing duplicate keys.
func canonicalType(t string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		return "Unknown"
	}
	if strings.EqualFold(t, "condo") {
		return "Boarding House"
	}
	return t
}

// availabilityBucket normalizes free-text availability into exactly one of
// available|occupied|reserved|unknown. A listing with no status at all is
// published-and-available by convention.
func availabilityBucket(status *string) string {
	s := normStatus(deref(status))
	if s == "" {
		return "available"
	}
	switch s {
	case "available", "occupied", "reserved":
		return s
	}
	return "unknown"
}

func propertyStats(d *dataset) domain.PropertyStats {
	out := domain.PropertyStats{PropertyTypes: map[string]int{}}
	rents := make([]float64, 0, len(d.memberListings))

	for _, l := range d.memberListings {
		out.Total++
		switch availabilityBucket(l.AvailabilityStatus) {
		case "available":
			out.StatusCounts.Available++
		case "occupied":
			out.StatusCounts.Occupied++
		case "reserved":
			out.StatusCounts.Reserved++
		default:
			out.StatusCounts.Unknown++
		}
		out.PropertyTypes[canonicalType(deref(l.PropertyType))]++
		rents = append(rents, l.MonthlyRent)
	}

	sc := out.StatusCounts
	if sum := sc.Available + sc.Occupied + sc.Reserved + sc.Unknown; sum != out.Total {
		// Cannot happen with the bucket switch above, but the invariant is
		// load-bearing for dashboards, so keep the guard.
		log.Warn().Int("sum", sum).Int("total", out.Total).Str("barangay", d.target).
			Msg("property status counts do not sum to total")
	}

	out.AverageRent = meanMoney(rents)
	return out
}

// bookingStats partitions barangay bookings by status. Approved deliberately
// excludes soft-deleted rows while the other buckets keep them for audit
// completeness; total likewise keeps them.
func bookingStats(d *dataset, now time.Time) domain.BookingStats {
	var out domain.BookingStats

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevStart := monthStart.AddDate(0, -1, 0)

	for _, b := range d.memberBookings {
		out.Total++
		switch b.Status {
		case domain.BookingApproved:
			if !b.IsDeleted {
				out.Approved++
			}
		case domain.BookingPending:
			out.Pending++
		case domain.BookingRejected:
			out.Rejected++
		case domain.BookingCancelled:
			out.Cancelled++
		case domain.BookingCompleted:
			out.Completed++
		}
		if b.CreatedAt != nil {
			switch t := b.CreatedAt.UTC(); {
			case !t.Before(monthStart):
				out.ThisMonth++
			case !t.Before(prevStart):
				out.LastMonth++
			}
		}
	}

	out.GrowthRate = growth(out.ThisMonth, out.LastMonth)
	return out
}
