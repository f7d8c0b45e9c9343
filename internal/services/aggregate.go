package services

import (
	"cmp"
	"math"
	"math/rand"
	"slices"
	"sort"

	"orders-dashboard/internal/models"
)

const (
	monthKeyLayout = "2006-01"
	histogramBins  = 50
	sampleSeed     = 42
	sampleLimit    = 1000
)

// The aggregation pipeline: pure functions from a filtered order slice to one
// derived table each. Every transform maps an empty input to an empty or
// zero-valued output, and counts-based ratios define x/0 = 0.

// Summarize computes the KPI row. Median and the 90th percentile use linear
// interpolation between order statistics.
func Summarize(orders []models.Order) models.Summary {
	var s models.Summary
	s.TotalOrders = len(orders)
	if s.TotalOrders == 0 {
		return s
	}

	days := make(map[string]struct{})
	prices := make([]float64, 0, len(orders))
	for _, o := range orders {
		s.TotalRevenue += o.TotalPrice
		days[o.OrderDate.Format("2006-01-02")] = struct{}{}
		prices = append(prices, o.TotalPrice)
	}

	s.AvgOrderValue = s.TotalRevenue / float64(s.TotalOrders)
	s.ActiveDays = len(days)
	if s.ActiveDays > 0 {
		s.OrdersPerDay = float64(s.TotalOrders) / float64(s.ActiveDays)
	}

	sort.Float64s(prices)
	s.MedianOrderValue = percentile(prices, 0.5)
	s.P90OrderValue = percentile(prices, 0.9)

	return s
}

// MonthlySeries buckets orders by calendar month. Buckets are chronological
// and sparse: months without orders are omitted.
func MonthlySeries(orders []models.Order) []models.MonthlyPoint {
	groups := make(map[string]*models.MonthlyPoint)
	for _, o := range orders {
		key := o.OrderDate.Format(monthKeyLayout)
		p := groups[key]
		if p == nil {
			p = &models.MonthlyPoint{Month: key}
			groups[key] = p
		}
		p.Orders++
		p.Revenue += o.TotalPrice
	}

	series := make([]models.MonthlyPoint, 0, len(groups))
	for _, p := range groups {
		series = append(series, *p)
	}
	slices.SortFunc(series, func(a, b models.MonthlyPoint) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return series
}

// YearlyTrend buckets orders by calendar year, ascending.
func YearlyTrend(orders []models.Order) []models.YearlyPoint {
	groups := make(map[int]*models.YearlyPoint)
	for _, o := range orders {
		year := o.OrderDate.Year()
		p := groups[year]
		if p == nil {
			p = &models.YearlyPoint{Year: year}
			groups[year] = p
		}
		p.Orders++
		p.Revenue += o.TotalPrice
	}

	trend := make([]models.YearlyPoint, 0, len(groups))
	for _, p := range groups {
		trend = append(trend, *p)
	}
	slices.SortFunc(trend, func(a, b models.YearlyPoint) int {
		return cmp.Compare(a.Year, b.Year)
	})
	return trend
}

// RevenueGrowth derives the year-over-year series from an ascending yearly
// trend. The earliest year has no prior year and is excluded, so N years
// produce N-1 entries. A zero-revenue prior year leaves the percentage
// undefined: the entry is kept with a nil GrowthPct.
func RevenueGrowth(trend []models.YearlyPoint) []models.GrowthPoint {
	if len(trend) < 2 {
		return nil
	}

	growth := make([]models.GrowthPoint, 0, len(trend)-1)
	for i := 1; i < len(trend); i++ {
		point := models.GrowthPoint{Year: trend[i].Year}
		if prior := trend[i-1].Revenue; prior != 0 {
			pct := (trend[i].Revenue - prior) / prior * 100.0
			point.GrowthPct = &pct
		}
		growth = append(growth, point)
	}
	return growth
}

// MonthComparison groups revenue by (year, month-of-year) so the same
// calendar month can be compared across years. Raw sums, no normalization.
func MonthComparison(orders []models.Order) []models.MonthOfYearRevenue {
	type key struct {
		year  int
		month int
	}
	groups := make(map[key]float64)
	for _, o := range orders {
		groups[key{o.OrderDate.Year(), int(o.OrderDate.Month())}] += o.TotalPrice
	}

	cells := make([]models.MonthOfYearRevenue, 0, len(groups))
	for k, revenue := range groups {
		cells = append(cells, models.MonthOfYearRevenue{Year: k.year, Month: k.month, Revenue: revenue})
	}
	slices.SortFunc(cells, func(a, b models.MonthOfYearRevenue) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	return cells
}

// StatusRevenueSeries groups revenue by (month, status label), one time
// series per label.
func StatusRevenueSeries(orders []models.Order) []models.StatusMonthlyRevenue {
	type key struct {
		month string
		label string
	}
	groups := make(map[key]float64)
	for _, o := range orders {
		groups[key{o.OrderDate.Format(monthKeyLayout), o.StatusLabel}] += o.TotalPrice
	}

	cells := make([]models.StatusMonthlyRevenue, 0, len(groups))
	for k, revenue := range groups {
		cells = append(cells, models.StatusMonthlyRevenue{Month: k.month, StatusLabel: k.label, Revenue: revenue})
	}
	slices.SortFunc(cells, func(a, b models.StatusMonthlyRevenue) int {
		if c := cmp.Compare(a.Month, b.Month); c != 0 {
			return c
		}
		return cmp.Compare(a.StatusLabel, b.StatusLabel)
	})
	return cells
}

// CountByStatus counts orders per raw status code, ascending by code.
func CountByStatus(orders []models.Order) []models.CategoryCount {
	return countBy(orders, func(o models.Order) string { return o.Status })
}

// CountByPriority counts orders per priority code, ascending by code.
func CountByPriority(orders []models.Order) []models.CategoryCount {
	return countBy(orders, func(o models.Order) string { return o.Priority })
}

func countBy(orders []models.Order, key func(models.Order) string) []models.CategoryCount {
	groups := make(map[string]int)
	for _, o := range orders {
		groups[key(o)]++
	}

	counts := make([]models.CategoryCount, 0, len(groups))
	for value, n := range groups {
		counts = append(counts, models.CategoryCount{Value: value, Orders: n})
	}
	slices.SortFunc(counts, func(a, b models.CategoryCount) int {
		return cmp.Compare(a.Value, b.Value)
	})
	return counts
}

// StatusBreakdown computes mean order value, order count and revenue per
// status label, ascending by label.
func StatusBreakdown(orders []models.Order) []models.StatusStats {
	groups := make(map[string]*models.StatusStats)
	for _, o := range orders {
		s := groups[o.StatusLabel]
		if s == nil {
			s = &models.StatusStats{StatusLabel: o.StatusLabel}
			groups[o.StatusLabel] = s
		}
		s.Orders++
		s.Revenue += o.TotalPrice
	}

	stats := make([]models.StatusStats, 0, len(groups))
	for _, s := range groups {
		if s.Orders > 0 {
			s.AvgOrderValue = s.Revenue / float64(s.Orders)
		}
		stats = append(stats, *s)
	}
	slices.SortFunc(stats, func(a, b models.StatusStats) int {
		return cmp.Compare(a.StatusLabel, b.StatusLabel)
	})
	return stats
}

// PriorityStatusCounts counts orders per (priority, status label) pair,
// feeding the stacked composition view.
func PriorityStatusCounts(orders []models.Order) []models.PriorityStatusCount {
	type key struct {
		priority string
		label    string
	}
	groups := make(map[key]int)
	for _, o := range orders {
		groups[key{o.Priority, o.StatusLabel}]++
	}

	counts := make([]models.PriorityStatusCount, 0, len(groups))
	for k, n := range groups {
		counts = append(counts, models.PriorityStatusCount{Priority: k.priority, StatusLabel: k.label, Orders: n})
	}
	slices.SortFunc(counts, func(a, b models.PriorityStatusCount) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.StatusLabel, b.StatusLabel)
	})
	return counts
}

// ValueHistogram bins total_price into equal-width bins spanning the observed
// range. A degenerate range (all values equal) collapses to a single bin.
func ValueHistogram(orders []models.Order) []models.HistogramBin {
	if len(orders) == 0 {
		return nil
	}

	low, high := orders[0].TotalPrice, orders[0].TotalPrice
	for _, o := range orders[1:] {
		low = math.Min(low, o.TotalPrice)
		high = math.Max(high, o.TotalPrice)
	}

	if low == high {
		return []models.HistogramBin{{Low: low, High: high, Count: len(orders)}}
	}

	width := (high - low) / histogramBins
	bins := make([]models.HistogramBin, histogramBins)
	for i := range bins {
		bins[i].Low = low + float64(i)*width
		bins[i].High = low + float64(i+1)*width
	}
	bins[histogramBins-1].High = high

	for _, o := range orders {
		idx := int((o.TotalPrice - low) / width)
		if idx >= histogramBins {
			idx = histogramBins - 1
		}
		bins[idx].Count++
	}
	return bins
}

// OutliersByStatus builds a box plot per status label: quartiles plus points
// beyond 1.5x the interquartile range, ascending by label.
func OutliersByStatus(orders []models.Order) []models.BoxPlot {
	groups := make(map[string][]float64)
	for _, o := range orders {
		groups[o.StatusLabel] = append(groups[o.StatusLabel], o.TotalPrice)
	}

	plots := make([]models.BoxPlot, 0, len(groups))
	for label, prices := range groups {
		sort.Float64s(prices)

		q1 := percentile(prices, 0.25)
		q3 := percentile(prices, 0.75)
		iqr := q3 - q1
		loFence := q1 - 1.5*iqr
		hiFence := q3 + 1.5*iqr

		plot := models.BoxPlot{
			StatusLabel: label,
			Q1:          q1,
			Median:      percentile(prices, 0.5),
			Q3:          q3,
			WhiskerLow:  prices[len(prices)-1],
			WhiskerHigh: prices[0],
		}

		// Whiskers reach the most extreme points inside the fences.
		for _, p := range prices {
			if p < loFence || p > hiFence {
				plot.Outliers = append(plot.Outliers, p)
				continue
			}
			plot.WhiskerLow = math.Min(plot.WhiskerLow, p)
			plot.WhiskerHigh = math.Max(plot.WhiskerHigh, p)
		}

		plots = append(plots, plot)
	}
	slices.SortFunc(plots, func(a, b models.BoxPlot) int {
		return cmp.Compare(a.StatusLabel, b.StatusLabel)
	})
	return plots
}

// StatusPriorityMatrix cross-tabulates summed revenue with statuses as
// columns and priorities as rows. This is the one aggregate where absent
// combinations are zero-filled rather than omitted.
func StatusPriorityMatrix(orders []models.Order) models.RevenueMatrix {
	type key struct {
		priority string
		status   string
	}
	sums := make(map[key]float64)
	statusSet := make(map[string]struct{})
	prioritySet := make(map[string]struct{})
	for _, o := range orders {
		sums[key{o.Priority, o.Status}] += o.TotalPrice
		statusSet[o.Status] = struct{}{}
		prioritySet[o.Priority] = struct{}{}
	}

	matrix := models.RevenueMatrix{
		Statuses:   sortedKeys(statusSet),
		Priorities: sortedKeys(prioritySet),
	}
	matrix.Revenue = make([][]float64, len(matrix.Priorities))
	for i, priority := range matrix.Priorities {
		row := make([]float64, len(matrix.Statuses))
		for j, status := range matrix.Statuses {
			row[j] = sums[key{priority, status}]
		}
		matrix.Revenue[i] = row
	}
	return matrix
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SampleOrders draws a fixed-seed pseudo-random sample of at most 1000 rows
// for raw-data inspection. The same input always yields the same sample.
func SampleOrders(orders []models.Order) []models.Order {
	if len(orders) == 0 {
		return nil
	}

	n := len(orders)
	limit := min(sampleLimit, n)

	rng := rand.New(rand.NewSource(sampleSeed))
	sample := make([]models.Order, 0, limit)
	for _, idx := range rng.Perm(n)[:limit] {
		sample = append(sample, orders[idx])
	}
	return sample
}

// percentile interpolates linearly between order statistics of an ascending
// slice. q is in [0, 1]. Returns 0 for an empty slice.
func percentile(sorted []float64, q float64) float64 {
	switch len(sorted) {
	case 0:
		return 0
	case 1:
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}
