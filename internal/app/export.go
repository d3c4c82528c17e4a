package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"upahan/internal/domain"
)

// Export formats. The snapshot is a field-for-field passthrough; no format
// recomputes anything.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatText = "text"
)

func ExportSnapshot(w io.Writer, format string, s domain.AnalyticsSnapshot) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, s)
	case FormatCSV:
		return WriteCSV(w, s)
	case FormatText:
		return WriteText(w, s)
	}
	return fmt.Errorf("unknown export format %q", format)
}

func WriteJSON(w io.Writer, s domain.AnalyticsSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteCSV emits section,metric,value rows so spreadsheets get one flat
// table per snapshot.
func WriteCSV(w io.Writer, s domain.AnalyticsSnapshot) error {
	cw := csv.NewWriter(w)
	row := func(section, metric string, value any) {
		var v string
		switch x := value.(type) {
		case int:
			v = strconv.Itoa(x)
		case float64:
			v = strconv.FormatFloat(x, 'f', -1, 64)
		case string:
			v = x
		default:
			v = fmt.Sprint(x)
		}
		cw.Write([]string{section, metric, v})
	}

	cw.Write([]string{"section", "metric", "value"})
	row("report", "barangay", s.Barangay)
	row("report", "generatedAt", s.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))

	gender := func(section string, g domain.GenderBreakdown) {
		row(section, "male", g.Male)
		row(section, "female", g.Female)
		row(section, "unknown", g.Unknown)
		row(section, "total", g.Total)
		row(section, "malePct", g.MalePct)
		row(section, "femalePct", g.FemalePct)
		row(section, "unknownPct", g.UnknownPct)
	}
	gender("tenants", s.Tenants)
	gender("owners", s.Owners)

	row("properties", "total", s.Properties.Total)
	row("properties", "available", s.Properties.StatusCounts.Available)
	row("properties", "occupied", s.Properties.StatusCounts.Occupied)
	row("properties", "reserved", s.Properties.StatusCounts.Reserved)
	row("properties", "unknown", s.Properties.StatusCounts.Unknown)
	row("properties", "averageRent", s.Properties.AverageRent)
	for _, t := range s.Market.PopularPropertyTypes {
		row("propertyTypes", t.Type, t.Count)
	}

	row("bookings", "total", s.Bookings.Total)
	row("bookings", "approved", s.Bookings.Approved)
	row("bookings", "pending", s.Bookings.Pending)
	row("bookings", "rejected", s.Bookings.Rejected)
	row("bookings", "cancelled", s.Bookings.Cancelled)
	row("bookings", "completed", s.Bookings.Completed)
	row("bookings", "thisMonth", s.Bookings.ThisMonth)
	row("bookings", "lastMonth", s.Bookings.LastMonth)
	row("bookings", "growthRate", s.Bookings.GrowthRate)

	row("rankings", "averageBookingsPerOwner", s.Rankings.AverageBookingsPerOwner)
	row("rankings", "averageBookingsPerTenant", s.Rankings.AverageBookingsPerTenant)
	row("rankings", "conversionRate", s.Rankings.ConversionRate)
	for i, o := range s.Rankings.TopOwners {
		row("topOwners", fmt.Sprintf("%d:%s", i+1, o.OwnerID), o.PropertyCount)
	}
	for i, o := range s.Rankings.MostActiveOwners {
		row("mostActiveOwners", fmt.Sprintf("%d:%s", i+1, o.OwnerID), o.BookingCount)
	}
	for i, t := range s.Rankings.MostActiveTenants {
		row("mostActiveTenants", fmt.Sprintf("%d:%s", i+1, t.TenantID), t.BookingCount)
	}

	row("market", "occupancyRate", s.Market.OccupancyRate)
	row("market", "averageDaysOnMarket", s.Market.AverageDaysOnMarket)
	row("market", "priceMin", s.Market.PriceRange.Min)
	row("market", "priceMax", s.Market.PriceRange.Max)
	row("market", "priceMedian", s.Market.PriceRange.Median)

	row("inquiries", "total", s.Inquiries.Total)
	row("inquiries", "proxied", fmt.Sprintf("%t", s.Inquiries.Proxied))

	cw.Flush()
	return cw.Error()
}

// WriteText renders the short human-readable summary shown to LGU officials.
func WriteText(w io.Writer, s domain.AnalyticsSnapshot) error {
	p := func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	}
	p("Barangay %s - rental analytics (%s)", s.Barangay, s.GeneratedAt.Format("2006-01-02"))
	p("")
	p("Tenants: %d (male %d%%, female %d%%, unknown %d%%)",
		s.Tenants.Total, s.Tenants.MalePct, s.Tenants.FemalePct, s.Tenants.UnknownPct)
	p("Owners:  %d (male %d%%, female %d%%, unknown %d%%)",
		s.Owners.Total, s.Owners.MalePct, s.Owners.FemalePct, s.Owners.UnknownPct)
	p("")
	p("Properties: %d total - %d available, %d occupied, %d reserved, %d unknown",
		s.Properties.Total, s.Properties.StatusCounts.Available, s.Properties.StatusCounts.Occupied,
		s.Properties.StatusCounts.Reserved, s.Properties.StatusCounts.Unknown)
	p("Average rent: %.2f   Occupancy: %d%%   Avg days on market: %d",
		s.Properties.AverageRent, s.Market.OccupancyRate, s.Market.AverageDaysOnMarket)
	p("Rent range: %.2f – %.2f (median %.2f)",
		s.Market.PriceRange.Min, s.Market.PriceRange.Max, s.Market.PriceRange.Median)
	p("")
	p("Bookings: %d total, %d approved (%d%% conversion), %d pending, %d rejected, %d cancelled, %d completed",
		s.Bookings.Total, s.Bookings.Approved, s.Rankings.ConversionRate,
		s.Bookings.Pending, s.Bookings.Rejected, s.Bookings.Cancelled, s.Bookings.Completed)
	p("Trend: %d this month vs %d last month (%+d%%)",
		s.Bookings.ThisMonth, s.Bookings.LastMonth, s.Bookings.GrowthRate)
	p("Inquiries: %d%s", s.Inquiries.Total, proxiedNote(s.Inquiries.Proxied))
	p("")
	if len(s.Rankings.TopOwners) > 0 {
		p("Top owners by properties:")
		for i, o := range s.Rankings.TopOwners {
			p("  %d. %s - %d properties, %d bookings, revenue %.2f", i+1, nameOrID(o.Name, o.OwnerID), o.PropertyCount, o.BookingCount, o.Revenue)
		}
	}
	if len(s.Rankings.MostActiveTenants) > 0 {
		p("Most active tenants:")
		for i, t := range s.Rankings.MostActiveTenants {
			p("  %d. %s - %d bookings", i+1, nameOrID(t.Name, t.TenantID), t.BookingCount)
		}
	}
	if len(s.Market.PopularPropertyTypes) > 0 {
		p("Property types:")
		for _, t := range s.Market.PopularPropertyTypes {
			p("  %s - %d listings, avg rent %.2f", t.Type, t.Count, t.AverageRent)
		}
	}
	return nil
}

func nameOrID(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

func proxiedNote(proxied bool) string {
	if proxied {
		return " (proxied from booking counts)"
	}
	return ""
}
