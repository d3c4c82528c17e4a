package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"upahan/internal/adapters/observability"
	"upahan/internal/domain"
)

// Analytics derives the per-barangay snapshot from raw record collections.
// Computation is synchronous per call; only the initial record loads run
// concurrently. The engine holds no state between calls.
type Analytics struct {
	store domain.RecordStore
	now   func() time.Time
}

func NewAnalytics(store domain.RecordStore) *Analytics {
	return &Analytics{store: store, now: time.Now}
}

// dataset is one call's in-memory view of the record store, decoded and
// pre-joined against the target barangay. memberBookings and memberListings
// hold only records that belong to the barangay.
type dataset struct {
	target string // normalized barangay

	listingByID map[string]domain.Listing
	users       map[string]domain.User
	userDocs    map[string]map[string]any
	apps        []domain.OwnerApplication
	profiles    map[string]domain.TenantProfile
	inquiries   []domain.Inquiry

	memberListings []domain.Listing
	memberBookings []domain.Booking

	hasInquiries bool
}

// ComputeAnalytics is total: for any input and record set it returns a
// well-typed snapshot and never an error. Internal failures degrade to the
// zero-valued snapshot so dashboards can render "no data" without null
// branches.
func (a *Analytics) ComputeAnalytics(ctx context.Context, barangay string) (snap domain.AnalyticsSnapshot) {
	started := a.now()
	now := started.UTC()
	degraded := false
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("barangay", barangay).Msg("analytics computation panicked")
			snap = domain.ZeroSnapshot(barangay, now)
			degraded = true
		}
		status := "ok"
		if degraded {
			status = "degraded"
		}
		observability.ObserveReport(status, time.Since(started))
	}()

	snap = domain.ZeroSnapshot(barangay, now)
	target := normBarangay(barangay)
	if target == "" {
		// Blank input matches nothing; an empty report, not an error.
		return snap
	}

	d, err := a.loadDataset(ctx, target)
	if err != nil {
		log.Error().Err(err).Str("barangay", barangay).Msg("record loads failed, returning zero snapshot")
		degraded = true
		return domain.ZeroSnapshot(barangay, now)
	}

	tenants, writes := tenantGenderBreakdown(d)
	snap.Tenants = tenants
	snap.Owners = ownerGenderBreakdown(d)
	snap.Properties = propertyStats(d)
	snap.Bookings = bookingStats(d, now)
	snap.Rankings = rankingStats(d, snap.Bookings)
	snap.Market = marketStats(d, snap.Properties, now)
	snap.Inquiries = inquiryStats(d, snap.Bookings)

	a.persistGenderWrites(ctx, d, writes)
	return snap
}

// loadDataset issues every collection read concurrently, then decodes into
// typed records. bookings/listings/users/applications are required; the
// inquiry and tenant-profile collections are optional and absence means an
// empty list.
func (a *Analytics) loadDataset(ctx context.Context, target string) (*dataset, error) {
	var bookingDocs, listingDocs, userDocs, appDocs, profileDocs, inquiryDocs []map[string]any
	hasInquiries := true

	g, gctx := errgroup.WithContext(ctx)
	required := func(col string, dst *[]map[string]any) func() error {
		return func() error {
			docs, err := a.store.List(gctx, col)
			if err != nil {
				return fmt.Errorf("list %s: %w", col, err)
			}
			*dst = docs
			return nil
		}
	}
	g.Go(required(domain.ColBookings, &bookingDocs))
	g.Go(required(domain.ColListings, &listingDocs))
	g.Go(required(domain.ColUsers, &userDocs))
	g.Go(required(domain.ColApplications, &appDocs))
	g.Go(func() error {
		docs, err := a.store.List(gctx, domain.ColTenantProfiles)
		if err != nil {
			if !errors.Is(err, domain.ErrNoCollection) {
				log.Warn().Err(err).Msg("tenant profiles unavailable, gender fallback disabled for this report")
			}
			return nil
		}
		profileDocs = docs
		return nil
	})
	g.Go(func() error {
		docs, err := a.store.List(gctx, domain.ColInquiries)
		if err != nil {
			hasInquiries = false
			if !errors.Is(err, domain.ErrNoCollection) {
				log.Warn().Err(err).Msg("inquiries unavailable, falling back to booking counts")
			}
			return nil
		}
		inquiryDocs = docs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &dataset{
		target:       target,
		listingByID:  make(map[string]domain.Listing, len(listingDocs)),
		users:        make(map[string]domain.User, len(userDocs)),
		userDocs:     make(map[string]map[string]any, len(userDocs)),
		profiles:     make(map[string]domain.TenantProfile, len(profileDocs)),
		hasInquiries: hasInquiries,
	}

	for _, doc := range userDocs {
		u := mapUser(doc)
		if u.ID == "" {
			continue
		}
		d.users[u.ID] = u
		d.userDocs[u.ID] = doc
	}
	for _, doc := range profileDocs {
		p := mapTenantProfile(doc)
		if p.UserID != "" {
			d.profiles[p.UserID] = p
		}
	}
	for _, doc := range listingDocs {
		l := mapListing(doc)
		if l.ID != "" {
			d.listingByID[l.ID] = l
		}
		if listingInBarangay(l, d.users, target) {
			d.memberListings = append(d.memberListings, l)
		}
	}
	for _, doc := range appDocs {
		d.apps = append(d.apps, mapOwnerApplication(doc))
	}
	for _, doc := range bookingDocs {
		b := mapBooking(doc)
		l, ok := d.listingByID[b.PropertyID]
		if !ok {
			// Dangling reference: degrade by exclusion, not by failure.
			log.Warn().Str("booking", b.ID).Str("property", b.PropertyID).Msg("booking references unknown listing")
			observability.ObserveDataQuality(domain.ColBookings, "propertyRef")
			continue
		}
		if listingInBarangay(l, d.users, target) {
			d.memberBookings = append(d.memberBookings, b)
		}
	}
	for _, doc := range inquiryDocs {
		d.inquiries = append(d.inquiries, mapInquiry(doc))
	}
	return d, nil
}

// persistGenderWrites caches fallback-resolved genders back onto the user
// records. The write is idempotent and best-effort; a failure degrades
// nothing in the already-computed snapshot.
func (a *Analytics) persistGenderWrites(ctx context.Context, d *dataset, writes []genderWrite) {
	for _, w := range writes {
		doc := d.userDocs[w.UserID]
		if doc == nil {
			doc = map[string]any{"id": w.UserID}
		}
		doc["gender"] = w.Gender
		if err := a.store.Upsert(ctx, domain.ColUsers, w.UserID, doc); err != nil {
			log.Warn().Err(err).Str("user", w.UserID).Msg("gender cache write failed")
		}
	}
}

// Barangays lists the distinct barangay names seen across listings and users,
// first spelling wins, sorted for stable output. Used by the cache warmer.
func (a *Analytics) Barangays(ctx context.Context) ([]string, error) {
	listingDocs, err := a.store.List(ctx, domain.ColListings)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", domain.ColListings, err)
	}
	userDocs, err := a.store.List(ctx, domain.ColUsers)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", domain.ColUsers, err)
	}

	byNorm := map[string]string{}
	add := func(raw *string) {
		n := normBarangay(deref(raw))
		if n == "" {
			return
		}
		if _, ok := byNorm[n]; !ok {
			byNorm[n] = strings.TrimSpace(deref(raw))
		}
	}
	for _, doc := range listingDocs {
		l := mapListing(doc)
		add(l.Barangay)
	}
	for _, doc := range userDocs {
		u := mapUser(doc)
		add(u.Barangay)
	}

	out := make([]string, 0, len(byNorm))
	for _, v := range byNorm {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}
