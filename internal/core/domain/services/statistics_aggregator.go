package services

import (
	"cmp"
	"slices"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
)

// ItemPopularity counts how often a catalog item appeared on order lines.
type ItemPopularity struct {
	CatalogItemID string
	Name          string
	// Occurrences is the number of lines referencing the item.
	Occurrences int
	// Quantity is the number of units ordered across those lines.
	Quantity int
}

// Statistics is a snapshot derived from a set of orders. It is recomputed on
// every request and never stored.
type Statistics struct {
	TotalOrders  int
	TodayOrders  int
	ActiveOrders int
	// TotalRevenue sums the totals of Completed orders.
	TotalRevenue kernel.Money
	// TodayRevenue sums the totals of Completed orders placed today.
	TodayRevenue kernel.Money
	GeneratedAt  time.Time

	byStatus   map[order.Status]int
	popularity []ItemPopularity
}

// CountByStatus returns the number of orders in s. Counts over order.Statuses
// sum to TotalOrders.
func (s Statistics) CountByStatus(status order.Status) int {
	return s.byStatus[status]
}

// StatusCounts returns a count for every valid status, zeros included.
func (s Statistics) StatusCounts() map[order.Status]int {
	counts := make(map[order.Status]int, len(order.Statuses()))
	for _, st := range order.Statuses() {
		counts[st] = s.byStatus[st]
	}
	return counts
}

// PopularItems returns items by descending occurrence, ties broken by catalog
// item id. limit <= 0 returns all items.
func (s Statistics) PopularItems(limit int) []ItemPopularity {
	if limit <= 0 || limit > len(s.popularity) {
		limit = len(s.popularity)
	}
	return slices.Clone(s.popularity[:limit])
}

// StatisticsAggregator derives Statistics from orders. "Today" is the
// calendar day of now in the aggregator's location.
//
// Example usage:
//
//	aggregator := services.NewStatisticsAggregator(time.Local)
//	stats := aggregator.Aggregate(orders, time.Now())
//	fmt.Println(stats.TotalRevenue, stats.PopularItems(5))
type StatisticsAggregator struct {
	location *time.Location
}

// NewStatisticsAggregator uses time.Local when loc is nil.
func NewStatisticsAggregator(loc *time.Location) StatisticsAggregator {
	if loc == nil {
		loc = time.Local
	}
	return StatisticsAggregator{location: loc}
}

func (a StatisticsAggregator) Location() *time.Location {
	return a.location
}

// Today returns the [from, to) bounds of the local calendar day containing now.
func (a StatisticsAggregator) Today(now time.Time) (time.Time, time.Time) {
	return LocalDay(now, a.location)
}

// Aggregate is pure: the same orders and now always yield the same result.
func (a StatisticsAggregator) Aggregate(orders []*order.Order, now time.Time) Statistics {
	from, to := a.Today(now)

	stats := Statistics{
		TotalRevenue: kernel.ZeroMoney(),
		TodayRevenue: kernel.ZeroMoney(),
		GeneratedAt:  now,
		byStatus:     make(map[order.Status]int, len(order.Statuses())),
	}
	popularity := make(map[string]*ItemPopularity)

	for _, o := range orders {
		if o == nil {
			continue
		}
		stats.TotalOrders++
		stats.byStatus[o.Status()]++
		if !o.Status().IsTerminal() {
			stats.ActiveOrders++
		}

		placed := o.PlacedAt()
		today := !placed.Before(from) && placed.Before(to)
		if today {
			stats.TodayOrders++
		}
		if o.Status() == order.Completed {
			stats.TotalRevenue = stats.TotalRevenue.Add(o.Total())
			if today {
				stats.TodayRevenue = stats.TodayRevenue.Add(o.Total())
			}
		}

		for _, l := range o.Lines() {
			p, ok := popularity[l.CatalogItemID()]
			if !ok {
				p = &ItemPopularity{CatalogItemID: l.CatalogItemID(), Name: l.Name()}
				popularity[l.CatalogItemID()] = p
			}
			p.Occurrences++
			p.Quantity += l.Quantity()
		}
	}

	stats.popularity = make([]ItemPopularity, 0, len(popularity))
	for _, p := range popularity {
		stats.popularity = append(stats.popularity, *p)
	}
	slices.SortFunc(stats.popularity, func(x, y ItemPopularity) int {
		if c := cmp.Compare(y.Occurrences, x.Occurrences); c != 0 {
			return c
		}
		return cmp.Compare(x.CatalogItemID, y.CatalogItemID)
	})

	return stats
}

// LocalDay returns the [from, to) bounds of the calendar day containing now
// in loc. Days with a DST shift are 23 or 25 hours long.
func LocalDay(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 1)
}
