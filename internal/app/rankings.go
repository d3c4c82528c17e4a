package app

import (
	"sort"

	"upahan/internal/domain"
)

const topN = 5

// rankingStats derives owner/tenant activity. Owners come from approved
// applications for the barangay, never from role flags. All sorts are stable
// so ties keep their first-seen order.
func rankingStats(d *dataset, bk domain.BookingStats) domain.RankingStats {
	out := domain.RankingStats{
		TopOwners:         []domain.OwnerActivity{},
		MostActiveOwners:  []domain.OwnerActivity{},
		MostActiveTenants: []domain.TenantActivity{},
	}

	// Approved owners, deduplicated, first-seen order.
	var ownerIDs []string
	seenOwner := map[string]bool{}
	for _, a := range d.apps {
		if a.Status != domain.ApplicationApproved || a.UserID == "" || seenOwner[a.UserID] {
			continue
		}
		if !applicationInBarangay(a, d.users, d.target) {
			continue
		}
		seenOwner[a.UserID] = true
		ownerIDs = append(ownerIDs, a.UserID)
	}

	owners := make([]domain.OwnerActivity, 0, len(ownerIDs))
	for _, id := range ownerIDs {
		oa := domain.OwnerActivity{OwnerID: id, Name: deref(d.users[id].Name)}
		for _, l := range d.memberListings {
			if l.UserID == id {
				oa.PropertyCount++
			}
		}
		var revenue []float64
		for _, b := range d.memberBookings {
			if b.OwnerID != id {
				continue
			}
			oa.BookingCount++
			if b.Status == domain.BookingApproved && !b.IsDeleted {
				revenue = append(revenue, b.TotalAmount)
			}
		}
		oa.Revenue = sumMoney(revenue)
		owners = append(owners, oa)
	}

	out.TopOwners = topOwnersBy(owners, func(a, b domain.OwnerActivity) bool {
		return a.PropertyCount > b.PropertyCount
	})
	out.MostActiveOwners = topOwnersBy(owners, func(a, b domain.OwnerActivity) bool {
		return a.BookingCount > b.BookingCount
	})

	// Unique tenants by booking count, first-seen order on ties.
	var tenantIDs []string
	counts := map[string]int{}
	for _, b := range d.memberBookings {
		if b.TenantID == "" {
			continue
		}
		if _, ok := counts[b.TenantID]; !ok {
			tenantIDs = append(tenantIDs, b.TenantID)
		}
		counts[b.TenantID]++
	}
	tenants := make([]domain.TenantActivity, 0, len(tenantIDs))
	for _, id := range tenantIDs {
		tenants = append(tenants, domain.TenantActivity{
			TenantID:     id,
			Name:         deref(d.users[id].Name),
			BookingCount: counts[id],
		})
	}
	sort.SliceStable(tenants, func(i, j int) bool {
		return tenants[i].BookingCount > tenants[j].BookingCount
	})
	if len(tenants) > topN {
		tenants = tenants[:topN]
	}
	out.MostActiveTenants = tenants

	out.AverageBookingsPerOwner = ratio1(bk.Total, len(ownerIDs))
	out.AverageBookingsPerTenant = ratio1(bk.Total, len(tenantIDs))
	out.ConversionRate = pct(bk.Approved, bk.Total)
	return out
}

func topOwnersBy(owners []domain.OwnerActivity, less func(a, b domain.OwnerActivity) bool) []domain.OwnerActivity {
	ranked := make([]domain.OwnerActivity, len(owners))
	copy(ranked, owners)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
