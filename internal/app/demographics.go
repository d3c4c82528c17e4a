package app

import (
	"upahan/internal/domain"
)

// genderWrite is a pending gender-cache write: a tenant whose gender only the
// profile fallback knew. The assembler persists these back onto the user
// records; the write is idempotent, so concurrent reports may repeat it.
type genderWrite struct {
	UserID string
	Gender string
}

// tenantGenderBreakdown counts resident tenants: approved bookings with paid
// payment status inside the barangay, one unit per unique tenant no matter
// how many qualifying bookings they hold.
func tenantGenderBreakdown(d *dataset) (domain.GenderBreakdown, []genderWrite) {
	seen := map[string]bool{}
	var out domain.GenderBreakdown
	writes := []genderWrite{}

	for _, b := range d.memberBookings {
		if b.Status != domain.BookingApproved || b.PaymentStatus != domain.PaymentPaid {
			continue
		}
		if b.TenantID == "" || seen[b.TenantID] {
			continue
		}
		seen[b.TenantID] = true

		g := deref(d.users[b.TenantID].Gender)
		if g == "" {
			if p, ok := d.profiles[b.TenantID]; ok && deref(p.Gender) != "" {
				g = deref(p.Gender)
				writes = append(writes, genderWrite{UserID: b.TenantID, Gender: g})
			}
		}
		tally(&out, g)
	}

	finishBreakdown(&out)
	return out, writes
}

// ownerGenderBreakdown mirrors the tenant logic keyed off approved owner
// applications for the barangay. One application maps to one owner per
// barangay, so no further deduplication is applied.
func ownerGenderBreakdown(d *dataset) domain.GenderBreakdown {
	var out domain.GenderBreakdown
	for _, a := range d.apps {
		if a.Status != domain.ApplicationApproved || !applicationInBarangay(a, d.users, d.target) {
			continue
		}
		tally(&out, deref(d.users[a.UserID].Gender))
	}
	finishBreakdown(&out)
	return out
}

func tally(b *domain.GenderBreakdown, gender string) {
	switch gender {
	case "male":
		b.Male++
	case "female":
		b.Female++
	default:
		b.Unknown++
	}
	b.Total++
}

func finishBreakdown(b *domain.GenderBreakdown) {
	b.MalePct = pct(b.Male, b.Total)
	b.FemalePct = pct(b.Female, b.Total)
	b.UnknownPct = pct(b.Unknown, b.Total)
}
