package app

import (
	"math"
	"sort"
	"time"

	"upahan/internal/domain"
)

func marketStats(d *dataset, props domain.PropertyStats, now time.Time) domain.MarketStats {
	out := domain.MarketStats{PopularPropertyTypes: []domain.PropertyTypeStat{}}

	out.OccupancyRate = pct(props.StatusCounts.Occupied, props.Total)
	out.AverageDaysOnMarket = averageDaysOnMarket(d.memberListings, now)
	out.PriceRange = priceRange(d.memberListings)
	out.PopularPropertyTypes = popularTypes(d.memberListings, props.PropertyTypes)
	return out
}

// averageDaysOnMarket is the mean of whole days since publishedAt, falling
// back to createdAt. Listings with neither date are skipped; future dates
// clamp to zero so the field stays non-negative.
func averageDaysOnMarket(listings []domain.Listing, now time.Time) int {
	total, n := 0, 0
	for _, l := range listings {
		ts := l.PublishedAt
		if ts == nil {
			ts = l.CreatedAt
		}
		if ts == nil {
			continue
		}
		days := int(now.Sub(ts.UTC()).Hours() / 24)
		if days < 0 {
			days = 0
		}
		total += days
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(n)))
}

// priceRange covers strictly positive rents. The even-length median picks the
// lower-middle element rather than interpolating.
func priceRange(listings []domain.Listing) domain.PriceRange {
	rents := make([]float64, 0, len(listings))
	for _, l := range listings {
		if l.MonthlyRent > 0 {
			rents = append(rents, l.MonthlyRent)
		}
	}
	if len(rents) == 0 {
		return domain.PriceRange{}
	}
	sort.Float64s(rents)
	return domain.PriceRange{
		Min:    rents[0],
		Max:    rents[len(rents)-1],
		Median: rents[(len(rents)-1)/2],
	}
}

// popularTypes joins the type counts with a per-type average rent, most
// common first; ties order by label so output stays deterministic.
func popularTypes(listings []domain.Listing, counts map[string]int) []domain.PropertyTypeStat {
	rentsByType := map[string][]float64{}
	for _, l := range listings {
		t := canonicalType(deref(l.PropertyType))
		rentsByType[t] = append(rentsByType[t], l.MonthlyRent)
	}

	out := make([]domain.PropertyTypeStat, 0, len(counts))
	for t, c := range counts {
		out = append(out, domain.PropertyTypeStat{
			Type:        t,
			Count:       c,
			AverageRent: meanMoney(rentsByType[t]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// inquiryStats counts barangay inquiries; when the collection is absent the
// booking total stands in as a proxy.
func inquiryStats(d *dataset, bk domain.BookingStats) domain.InquiryStats {
	if !d.hasInquiries {
		return domain.InquiryStats{Total: bk.Total, Proxied: true}
	}
	var n int
	for _, q := range d.inquiries {
		if l, ok := d.listingByID[q.ListingID]; ok && listingInBarangay(l, d.users, d.target) {
			n++
		}
	}
	return domain.InquiryStats{Total: n}
}
