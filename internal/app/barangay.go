package app

import (
	"strings"

	"upahan/internal/domain"
)

// normBarangay collapses case and whitespace so " Brgy  Uno" and "brgy uno"
// compare equal. An empty or blank name normalizes to "" and matches nothing.
func normBarangay(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// listingInBarangay is the join key for every downstream aggregate. The
// listing's own barangay wins when present; otherwise the owner's user record
// decides. Absence on both sides is non-membership, never an error.
// target must already be normalized.
func listingInBarangay(l domain.Listing, users map[string]domain.User, target string) bool {
	if target == "" {
		return false
	}
	if b := deref(l.Barangay); strings.TrimSpace(b) != "" {
		return normBarangay(b) == target
	}
	if owner, ok := users[l.UserID]; ok {
		if b := deref(owner.Barangay); strings.TrimSpace(b) != "" {
			return normBarangay(b) == target
		}
	}
	return false
}

// applicationInBarangay mirrors the listing rule for owner applications.
func applicationInBarangay(a domain.OwnerApplication, users map[string]domain.User, target string) bool {
	if target == "" {
		return false
	}
	if b := deref(a.Barangay); strings.TrimSpace(b) != "" {
		return normBarangay(b) == target
	}
	if u, ok := users[a.UserID]; ok {
		if b := deref(u.Barangay); strings.TrimSpace(b) != "" {
			return normBarangay(b) == target
		}
	}
	return false
}
