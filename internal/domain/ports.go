package domain

import (
	"context"
	"errors"
)

// Collection names served by the record store.
const (
	ColBookings       = "bookings"
	ColListings       = "published_listings"
	ColUsers          = "users"
	ColApplications   = "owner_applications"
	ColInquiries      = "listing_inquiries"
	ColTenantProfiles = "tenant_profiles"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrNoCollection means the store does not serve the named collection.
	// Optional collections (listing_inquiries, tenant_profiles) surface it;
	// callers treat it as an empty list, not a failure.
	ErrNoCollection = errors.New("unknown collection")
)

// RecordStore is generic document access over entity collections. The store
// is an unordered, eventually-consistent source; documents are loosely typed
// and the app layer decodes them into record structs at the boundary.
type RecordStore interface {
	List(ctx context.Context, collection string) ([]map[string]any, error)
	Get(ctx context.Context, collection, id string) (map[string]any, error)
	Upsert(ctx context.Context, collection, id string, doc map[string]any) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
