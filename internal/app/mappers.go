package app

import (
	"strconv"
	"strings"
	"time"

	"upahan/internal/adapters/observability"
	"upahan/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Documents come from several app versions; field names drift between
// camelCase and snake_case. Each registry lists the accepted spellings in
// preference order.

var bookingAliases = map[string][]string{
	"id":       {"id", "_id", "bookingId", "booking_id"},
	"property": {"propertyId", "property_id", "listingId", "listing_id"},
	"tenant":   {"tenantId", "tenant_id", "userId", "user_id"},
	"owner":    {"ownerId", "owner_id", "landlordId", "landlord_id"},
	"status":   {"status", "bookingStatus", "booking_status"},
	"payment":  {"paymentStatus", "payment_status", "payment.status"},
	"type":     {"tenantType", "tenant_type"},
	"people":   {"numberOfPeople", "number_of_people", "occupants"},
	"rent":     {"monthlyRent", "monthly_rent", "rent"},
	"total":    {"totalAmount", "total_amount", "amount"},
	"created":  {"createdAt", "created_at", "dateCreated"},
	"deleted":  {"isDeleted", "is_deleted", "deleted"},
}

var listingAliases = map[string][]string{
	"id":        {"id", "_id", "listingId", "listing_id"},
	"user":      {"userId", "user_id", "ownerId", "owner_id"},
	"barangay":  {"barangay", "brgy", "address.barangay"},
	"status":    {"availabilityStatus", "availability_status", "availability"},
	"type":      {"propertyType", "property_type", "type"},
	"rent":      {"monthlyRent", "monthly_rent", "rent", "price"},
	"published": {"publishedAt", "published_at", "datePublished"},
	"created":   {"createdAt", "created_at", "dateCreated"},
	"views":     {"viewCount", "view_count", "views"},
}

var userAliases = map[string][]string{
	"id":       {"id", "_id", "userId", "user_id"},
	"name":     {"name", "fullName", "full_name", "displayName"},
	"gender":   {"gender", "sex", "profile.gender"},
	"barangay": {"barangay", "brgy", "address.barangay"},
	"roles":    {"roles", "role"},
}

var applicationAliases = map[string][]string{
	"user":     {"userId", "user_id", "applicantId", "applicant_id"},
	"barangay": {"barangay", "brgy"},
	"status":   {"status", "applicationStatus", "application_status"},
	"reviewed": {"reviewedAt", "reviewed_at"},
	"created":  {"createdAt", "created_at"},
}

var profileAliases = map[string][]string{
	"user":   {"userId", "user_id", "id", "_id"},
	"gender": {"gender", "sex"},
}

var inquiryAliases = map[string][]string{
	"id":      {"id", "_id", "inquiryId", "inquiry_id"},
	"listing": {"listingId", "listing_id", "propertyId", "property_id"},
	"tenant":  {"tenantId", "tenant_id", "userId", "user_id"},
	"created": {"createdAt", "created_at"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// firstStrFlexible: string at the first matching alias path; numbers are
// rendered back to text so numeric ids survive the JSON round trip.
func firstStrFlexible(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) (float64, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func firstIntFlexible(m map[string]any, aliases map[string][]string, key string) int {
	if f, ok := getFloatFlexible(m, aliases[key]...); ok {
		return int(f)
	}
	return 0
}

func firstBoolFlexible(m map[string]any, aliases map[string][]string, key string) bool {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case bool:
			return v
		case string:
			s := strings.ToLower(strings.TrimSpace(v))
			if s == "true" || s == "1" || s == "yes" {
				return true
			}
			if s == "false" || s == "0" || s == "no" {
				return false
			}
		case float64:
			return v != 0
		}
	}
	return false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// firstTimeFlexible: RFC3339-ish strings or unix seconds/millis.
func firstTimeFlexible(m map[string]any, aliases map[string][]string, key string) *time.Time {
	for _, p := range aliases[key] {
		switch v := lookupAny(m, p).(type) {
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			for _, layout := range timeLayouts {
				if t, err := time.Parse(layout, s); err == nil {
					t = t.UTC()
					return &t
				}
			}
		case float64:
			if v <= 0 {
				continue
			}
			sec := int64(v)
			if v > 1e12 { // millis
				sec = int64(v / 1000)
			}
			t := time.Unix(sec, 0).UTC()
			return &t
		}
	}
	return nil
}

func ptrStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// normStatus lower-cases and trims free-text status values.
func normStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normGender maps free text to male|female; anything else is "".
func normGender(s string) string {
	switch normStatus(s) {
	case "male", "m":
		return "male"
	case "female", "f":
		return "female"
	}
	return ""
}

/********** record mappers **********/

func mapBooking(doc map[string]any) domain.Booking {
	b := domain.Booking{
		ID:             firstStrFlexible(doc, bookingAliases, "id"),
		PropertyID:     firstStrFlexible(doc, bookingAliases, "property"),
		TenantID:       firstStrFlexible(doc, bookingAliases, "tenant"),
		OwnerID:        firstStrFlexible(doc, bookingAliases, "owner"),
		Status:         normStatus(firstStrFlexible(doc, bookingAliases, "status")),
		PaymentStatus:  normStatus(firstStrFlexible(doc, bookingAliases, "payment")),
		TenantType:     ptrStr(firstStrFlexible(doc, bookingAliases, "type")),
		NumberOfPeople: firstIntFlexible(doc, bookingAliases, "people"),
		CreatedAt:      firstTimeFlexible(doc, bookingAliases, "created"),
		IsDeleted:      firstBoolFlexible(doc, bookingAliases, "deleted"),
	}
	if f, ok := getFloatFlexible(doc, bookingAliases["rent"]...); ok {
		b.MonthlyRent = f
	}
	if f, ok := getFloatFlexible(doc, bookingAliases["total"]...); ok {
		b.TotalAmount = f
	}
	for _, f := range []struct{ field, val string }{
		{"id", b.ID}, {"propertyId", b.PropertyID}, {"tenantId", b.TenantID}, {"ownerId", b.OwnerID},
	} {
		if f.val == "" {
			observability.ObserveDataQuality(domain.ColBookings, f.field)
		}
	}
	return b
}

func mapListing(doc map[string]any) domain.Listing {
	l := domain.Listing{
		ID:                 firstStrFlexible(doc, listingAliases, "id"),
		UserID:             firstStrFlexible(doc, listingAliases, "user"),
		Barangay:           ptrStr(firstStrFlexible(doc, listingAliases, "barangay")),
		AvailabilityStatus: ptrStr(firstStrFlexible(doc, listingAliases, "status")),
		PropertyType:       ptrStr(firstStrFlexible(doc, listingAliases, "type")),
		PublishedAt:        firstTimeFlexible(doc, listingAliases, "published"),
		CreatedAt:          firstTimeFlexible(doc, listingAliases, "created"),
		ViewCount:          firstIntFlexible(doc, listingAliases, "views"),
	}
	if f, ok := getFloatFlexible(doc, listingAliases["rent"]...); ok {
		l.MonthlyRent = f
	}
	if l.ID == "" {
		observability.ObserveDataQuality(domain.ColListings, "id")
	}
	if l.UserID == "" {
		observability.ObserveDataQuality(domain.ColListings, "userId")
	}
	return l
}

func mapUser(doc map[string]any) domain.User {
	u := domain.User{
		ID:       firstStrFlexible(doc, userAliases, "id"),
		Name:     ptrStr(firstStrFlexible(doc, userAliases, "name")),
		Gender:   ptrStr(normGender(firstStrFlexible(doc, userAliases, "gender"))),
		Barangay: ptrStr(firstStrFlexible(doc, userAliases, "barangay")),
	}
	if raw, ok := lookupAny(doc, "roles").([]any); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok && s != "" {
				u.Roles = append(u.Roles, s)
			}
		}
	} else if s := firstStrFlexible(doc, userAliases, "roles"); s != "" {
		u.Roles = []string{s}
	}
	if u.ID == "" {
		observability.ObserveDataQuality(domain.ColUsers, "id")
	}
	return u
}

func mapOwnerApplication(doc map[string]any) domain.OwnerApplication {
	a := domain.OwnerApplication{
		UserID:     firstStrFlexible(doc, applicationAliases, "user"),
		Barangay:   ptrStr(firstStrFlexible(doc, applicationAliases, "barangay")),
		Status:     normStatus(firstStrFlexible(doc, applicationAliases, "status")),
		ReviewedAt: firstTimeFlexible(doc, applicationAliases, "reviewed"),
		CreatedAt:  firstTimeFlexible(doc, applicationAliases, "created"),
	}
	if a.UserID == "" {
		observability.ObserveDataQuality(domain.ColApplications, "userId")
	}
	return a
}

func mapTenantProfile(doc map[string]any) domain.TenantProfile {
	return domain.TenantProfile{
		UserID: firstStrFlexible(doc, profileAliases, "user"),
		Gender: ptrStr(normGender(firstStrFlexible(doc, profileAliases, "gender"))),
	}
}

func mapInquiry(doc map[string]any) domain.Inquiry {
	return domain.Inquiry{
		ID:        firstStrFlexible(doc, inquiryAliases, "id"),
		ListingID: firstStrFlexible(doc, inquiryAliases, "listing"),
		TenantID:  firstStrFlexible(doc, inquiryAliases, "tenant"),
		CreatedAt: firstTimeFlexible(doc, inquiryAliases, "created"),
	}
}
