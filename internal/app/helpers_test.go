package app

import (
	"testing"
	"time"

	"upahan/internal/domain"
)

func TestNormBarangay(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Poblacion", "poblacion"},
		{"  Brgy   Uno ", "brgy uno"},
		{"SAN\tISIDRO", "san isidro"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := normBarangay(c.in); got != c.want {
			t.Errorf("normBarangay(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestListingInBarangay_BlankTargetMatchesNothing(t *testing.T) {
	b := "poblacion"
	l := domain.Listing{ID: "l1", UserID: "o1", Barangay: &b}
	if listingInBarangay(l, nil, "") {
		t.Fatalf("blank target must match nothing")
	}
}

func TestAvailabilityBucket(t *testing.T) {
	av := func(s string) *string { return &s }
	cases := []struct {
		in   *string
		want string
	}{
		{nil, "available"},
		{av(""), "available"},
		{av("  Available "), "available"},
		{av("OCCUPIED"), "occupied"},
		{av(" reserved"), "reserved"},
		{av("for rent"), "unknown"},
	}
	for _, c := range cases {
		if got := availabilityBucket(c.in); got != c.want {
			t.Errorf("availabilityBucket(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCanonicalType(t *testing.T) {
	if canonicalType("condo") != "Boarding House" || canonicalType("CONDO") != "Boarding House" {
		t.Fatalf("condo alias must merge into Boarding House")
	}
	if canonicalType(" Apartment ") != "Apartment" {
		t.Fatalf("types must be trimmed")
	}
	if canonicalType("") != "Unknown" {
		t.Fatalf("missing type buckets as Unknown")
	}
}

func TestPctAndGrowth(t *testing.T) {
	if pct(1, 0) != 0 || pct(0, 0) != 0 {
		t.Fatalf("pct must be 0 on zero total")
	}
	if pct(1, 3) != 33 || pct(2, 3) != 67 {
		t.Fatalf("pct must round half away from zero: %d %d", pct(1, 3), pct(2, 3))
	}
	if growth(5, 0) != 0 {
		t.Fatalf("growth must be 0 when last is 0")
	}
	if growth(3, 2) != 50 || growth(1, 2) != -50 {
		t.Fatalf("growth: %d %d", growth(3, 2), growth(1, 2))
	}
}

func TestRatio1(t *testing.T) {
	if ratio1(7, 0) != 0 {
		t.Fatalf("ratio1 must be 0 on zero denominator")
	}
	if got := ratio1(7, 3); got != 2.3 {
		t.Fatalf("ratio1(7,3) = %v, want 2.3", got)
	}
}

func TestMeanMoney_ExcludesNonPositive(t *testing.T) {
	if got := meanMoney([]float64{0, -5, 3000, 5000}); got != 4000 {
		t.Fatalf("meanMoney = %v, want 4000", got)
	}
	if meanMoney(nil) != 0 {
		t.Fatalf("empty mean must be 0")
	}
}

func TestPriceRange_MedianLowerMiddle(t *testing.T) {
	mk := func(rents ...float64) []domain.Listing {
		out := make([]domain.Listing, len(rents))
		for i, r := range rents {
			out[i] = domain.Listing{MonthlyRent: r}
		}
		return out
	}
	if pr := priceRange(mk(4000, 2000, 6000)); pr.Median != 4000 || pr.Min != 2000 || pr.Max != 6000 {
		t.Fatalf("odd-length: %+v", pr)
	}
	// Even length keeps the lower-middle element rather than interpolating.
	if pr := priceRange(mk(1000, 2000, 3000, 4000)); pr.Median != 2000 {
		t.Fatalf("even-length median = %v, want 2000", pr.Median)
	}
	if pr := priceRange(mk(0, -1)); pr != (domain.PriceRange{}) {
		t.Fatalf("no positive rents must yield zero range: %+v", pr)
	}
}

func TestMapBooking_FieldAliases(t *testing.T) {
	doc := map[string]any{
		"booking_id":    "b9",
		"property_id":   "l1",
		"tenant_id":     "t1",
		"owner_id":      "o1",
		"status":        " Approved ",
		"paymentStatus": "PAID",
		"monthly_rent":  "4500.50",
		"totalAmount":   9000.0,
		"created_at":    "2026-07-15",
		"is_deleted":    "true",
	}
	b := mapBooking(doc)
	if b.ID != "b9" || b.PropertyID != "l1" || b.TenantID != "t1" || b.OwnerID != "o1" {
		t.Fatalf("ids: %+v", b)
	}
	if b.Status != domain.BookingApproved || b.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("statuses must be normalized: %+v", b)
	}
	if b.MonthlyRent != 4500.5 {
		t.Fatalf("rent = %v", b.MonthlyRent)
	}
	if b.TotalAmount != 9000 {
		t.Fatalf("total = %v", b.TotalAmount)
	}
	if !b.IsDeleted {
		t.Fatalf("deleted flag must parse from text")
	}
	if b.CreatedAt == nil || !b.CreatedAt.Equal(time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("createdAt = %v", b.CreatedAt)
	}
}

func TestMapBooking_NumericIDsSurvive(t *testing.T) {
	b := mapBooking(map[string]any{"id": 12.0, "propertyId": 7.0, "tenantId": 3.0, "ownerId": 4.0})
	if b.ID != "12" || b.PropertyID != "7" {
		t.Fatalf("numeric ids must render to text: %+v", b)
	}
}

func TestMapUser_GenderNormalization(t *testing.T) {
	u := mapUser(map[string]any{"id": "u1", "gender": " FEMALE "})
	if deref(u.Gender) != "female" {
		t.Fatalf("gender = %v", u.Gender)
	}
	u = mapUser(map[string]any{"id": "u2", "gender": "prefer not to say"})
	if u.Gender != nil {
		t.Fatalf("unrecognized gender must stay unset, got %v", *u.Gender)
	}
}
