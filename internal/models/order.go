package models

import "time"

// Order is one row of the order-fact table. StatusLabel is empty until the
// enrichment stage fills it; unmapped status codes carry their own code.
type Order struct {
	OrderKey    int64     `json:"order_key"`
	OrderDate   time.Time `json:"order_date"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	TotalPrice  float64   `json:"total_price"`
	StatusLabel string    `json:"status_label,omitempty"`
}

// Filter is the conjunctive predicate selected through the dashboard controls.
// Empty Statuses/Priorities mean no restriction on that field.
type Filter struct {
	Start      time.Time
	End        time.Time
	Statuses   []string
	Priorities []string
}

type Summary struct {
	TotalOrders      int     `json:"total_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	ActiveDays       int     `json:"active_days"`
	OrdersPerDay     float64 `json:"orders_per_day"`
	MedianOrderValue float64 `json:"median_order_value"`
	P90OrderValue    float64 `json:"p90_order_value"`
}

// MonthlyPoint is one calendar-month bucket, Month formatted as "2006-01".
type MonthlyPoint struct {
	Month   string  `json:"month"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type YearlyPoint struct {
	Year    int     `json:"year"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// GrowthPoint carries year-over-year revenue growth. GrowthPct is nil when the
// prior year's revenue was zero, which leaves the percentage undefined.
type GrowthPoint struct {
	Year      int      `json:"year"`
	GrowthPct *float64 `json:"growth_pct"`
}

type MonthOfYearRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

type StatusMonthlyRevenue struct {
	Month       string  `json:"month"`
	StatusLabel string  `json:"status_label"`
	Revenue     float64 `json:"revenue"`
}

type CategoryCount struct {
	Value  string `json:"value"`
	Orders int    `json:"orders"`
}

type StatusStats struct {
	StatusLabel   string  `json:"status_label"`
	AvgOrderValue float64 `json:"avg_order_value"`
	Orders        int     `json:"orders"`
	Revenue       float64 `json:"revenue"`
}

type PriorityStatusCount struct {
	Priority    string `json:"priority"`
	StatusLabel string `json:"status_label"`
	Orders      int    `json:"orders"`
}

type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// BoxPlot summarizes the order-value distribution for one status label using
// the 1.5x interquartile-range convention: whiskers reach the most extreme
// values inside the fences, points beyond them are listed as outliers.
type BoxPlot struct {
	StatusLabel string    `json:"status_label"`
	Q1          float64   `json:"q1"`
	Median      float64   `json:"median"`
	Q3          float64   `json:"q3"`
	WhiskerLow  float64   `json:"whisker_low"`
	WhiskerHigh float64   `json:"whisker_high"`
	Outliers    []float64 `json:"outliers"`
}

// RevenueMatrix is the status x priority revenue cross-tab. Revenue is indexed
// [priority][status] and absent combinations are zero-filled.
type RevenueMatrix struct {
	Statuses   []string    `json:"statuses"`
	Priorities []string    `json:"priorities"`
	Revenue    [][]float64 `json:"revenue"`
}
