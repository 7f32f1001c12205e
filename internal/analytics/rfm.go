package analytics

import (
	"math"
	"sort"
	"time"
)

// Per-metric segment labels.
const (
	LevelHigh   = "High"
	LevelMedium = "Medium"
	LevelLow    = "Low"
)

// Composite segment names.
const (
	SegmentVIP        = "VIP"
	SegmentLoyal      = "Loyal"
	SegmentRecent     = "Recent"
	SegmentBigSpender = "Big Spender"
	SegmentAtRisk     = "At Risk"
	SegmentRegular    = "Regular"
)

// Fixed per-metric thresholds. Recency in days since the most recent order,
// frequency in orders, monetary in currency units.
const (
	recencyHighDays   = 30
	recencyMediumDays = 90
	frequencyHigh     = 4
	frequencyMedium   = 2
	monetaryHigh      = 2_000_000
	monetaryMedium    = 500_000
)

// CustomerSegment carries the raw RFM metrics and the assigned labels for
// one customer.
type CustomerSegment struct {
	CustomerID       int64  `json:"userId"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	RecencyDays      int    `json:"recencyDays"`
	Frequency        int    `json:"frequency"`
	MonetaryValue    int64  `json:"monetaryValue"`
	RecencySegment   string `json:"recencySegment"`
	FrequencySegment string `json:"frequencySegment"`
	MonetarySegment  string `json:"monetarySegment"`
	Segment          string `json:"segment"`
}

// RFMSummary aggregates segment counts and metric averages over the scored
// customers.
type RFMSummary struct {
	SegmentCounts   map[string]int `json:"segmentCounts"`
	AvgRecencyDays  float64        `json:"avgRecencyDays"`  // 1 decimal
	AvgFrequency    float64        `json:"avgFrequency"`    // 1 decimal
	AvgMonetary     int64          `json:"avgMonetaryValue"` // nearest unit
	TotalCustomers  int            `json:"totalCustomers"`
}

// RFMResult is the full segmentation output.
type RFMResult struct {
	Customers []CustomerSegment `json:"customers"`
	Summary   RFMSummary        `json:"summary"`
}

// segmentRule is one row of the composite assignment table. Rules are
// evaluated top to bottom; the first match wins.
type segmentRule struct {
	name  string
	match func(r, f, m string) bool
}

var segmentRules = []segmentRule{
	{SegmentVIP, func(r, f, m string) bool { return r == LevelHigh && f == LevelHigh && m == LevelHigh }},
	{SegmentLoyal, func(r, f, m string) bool { return r == LevelHigh && f == LevelHigh }},
	{SegmentRecent, func(r, f, m string) bool { return r == LevelHigh }},
	{SegmentBigSpender, func(r, f, m string) bool { return f == LevelHigh && m == LevelHigh }},
	{SegmentAtRisk, func(r, f, m string) bool { return r == LevelLow && f == LevelLow }},
}

func compositeSegment(r, f, m string) string {
	for _, rule := range segmentRules {
		if rule.match(r, f, m) {
			return rule.name
		}
	}
	return SegmentRegular
}

func recencyLevel(days int) string {
	switch {
	case days <= recencyHighDays:
		return LevelHigh
	case days <= recencyMediumDays:
		return LevelMedium
	default:
		return LevelLow
	}
}

func frequencyLevel(n int) string {
	switch {
	case n >= frequencyHigh:
		return LevelHigh
	case n >= frequencyMedium:
		return LevelMedium
	default:
		return LevelLow
	}
}

func monetaryLevel(v int64) string {
	switch {
	case v >= monetaryHigh:
		return LevelHigh
	case v >= monetaryMedium:
		return LevelMedium
	default:
		return LevelLow
	}
}

// SegmentCustomers scores every customer that placed at least one order.
// Customers without orders are excluded entirely, and a customer whose
// orders all lack timestamps is skipped rather than failing the report.
func SegmentCustomers(orders []OrderRecord, customers []CustomerRecord, asOf time.Time) RFMResult {
	byCustomer := make(map[int64][]OrderRecord)
	for _, o := range orders {
		if o.CustomerID == nil {
			continue
		}
		byCustomer[*o.CustomerID] = append(byCustomer[*o.CustomerID], o)
	}

	result := RFMResult{Customers: []CustomerSegment{}}
	var sumRecency, sumFrequency, sumMonetary int64

	for _, c := range customers {
		userOrders := byCustomer[c.ID]
		if len(userOrders) == 0 {
			continue
		}

		var latest *time.Time
		var monetary int64
		for _, o := range userOrders {
			monetary += o.TotalAmount
			if o.CreatedAt != nil && (latest == nil || o.CreatedAt.After(*latest)) {
				latest = o.CreatedAt
			}
		}
		if latest == nil {
			// no parsable order timestamp for this customer
			continue
		}

		recency := DaysBetween(*latest, asOf)
		frequency := len(userOrders)

		seg := CustomerSegment{
			CustomerID:       c.ID,
			Username:         c.Username,
			Email:            c.Email,
			RecencyDays:      recency,
			Frequency:        frequency,
			MonetaryValue:    monetary,
			RecencySegment:   recencyLevel(recency),
			FrequencySegment: frequencyLevel(frequency),
			MonetarySegment:  monetaryLevel(monetary),
		}
		seg.Segment = compositeSegment(seg.RecencySegment, seg.FrequencySegment, seg.MonetarySegment)
		result.Customers = append(result.Customers, seg)

		sumRecency += int64(recency)
		sumFrequency += int64(frequency)
		sumMonetary += monetary
	}

	sort.Slice(result.Customers, func(i, j int) bool {
		return result.Customers[i].CustomerID < result.Customers[j].CustomerID
	})

	counts := make(map[string]int)
	for _, s := range result.Customers {
		counts[s.Segment]++
	}
	result.Summary = RFMSummary{SegmentCounts: counts, TotalCustomers: len(result.Customers)}
	if n := len(result.Customers); n > 0 {
		result.Summary.AvgRecencyDays = Round1(float64(sumRecency) / float64(n))
		result.Summary.AvgFrequency = Round1(float64(sumFrequency) / float64(n))
		result.Summary.AvgMonetary = int64(math.Round(float64(sumMonetary) / float64(n)))
	}
	return result
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }

// Round2 rounds to two decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }
