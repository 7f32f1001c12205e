package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrI64(v int64) *int64 { return &v }

func ptrTime(t time.Time) *time.Time { return &t }

func TestSegmentCustomersVIP(t *testing.T) {
	asOf := date(2024, time.June, 30)
	uid := int64(1)
	// 4 orders totaling 2,100,000 within the last 10 days -> High/High/High
	orders := []OrderRecord{}
	for i := 0; i < 4; i++ {
		orders = append(orders, OrderRecord{
			ID: int64(i), CustomerID: &uid, TotalAmount: 525_000,
			CreatedAt: ptrTime(asOf.AddDate(0, 0, -2-i)),
		})
	}
	customers := []CustomerRecord{{ID: uid, Username: "an"}}

	res := SegmentCustomers(orders, customers, asOf)
	require.Len(t, res.Customers, 1)
	s := res.Customers[0]
	assert.Equal(t, LevelHigh, s.RecencySegment)
	assert.Equal(t, LevelHigh, s.FrequencySegment)
	assert.Equal(t, LevelHigh, s.MonetarySegment)
	assert.Equal(t, SegmentVIP, s.Segment)
	assert.Equal(t, 1, res.Summary.SegmentCounts[SegmentVIP])
}

// 3 orders at 500k/300k/1.2M on 2024-01-05/12/20, asOf 2024-01-25:
// recency 5 days (High), frequency 3 (Medium), monetary 2,000,000 (High).
// Loyal requires Frequency High, so the rule table lands on Recent.
func TestSegmentCustomersScenarioRecentHighMonetary(t *testing.T) {
	uid := int64(7)
	orders := []OrderRecord{
		{ID: 1, CustomerID: &uid, TotalAmount: 500_000, CreatedAt: ptrTime(date(2024, time.January, 5))},
		{ID: 2, CustomerID: &uid, TotalAmount: 300_000, CreatedAt: ptrTime(date(2024, time.January, 12))},
		{ID: 3, CustomerID: &uid, TotalAmount: 1_200_000, CreatedAt: ptrTime(date(2024, time.January, 20))},
	}
	customers := []CustomerRecord{{ID: uid, Username: "binh"}}

	res := SegmentCustomers(orders, customers, date(2024, time.January, 25))
	require.Len(t, res.Customers, 1)
	s := res.Customers[0]
	assert.Equal(t, 5, s.RecencyDays)
	assert.Equal(t, 3, s.Frequency)
	assert.Equal(t, int64(2_000_000), s.MonetaryValue)
	assert.Equal(t, LevelHigh, s.RecencySegment)
	assert.Equal(t, LevelMedium, s.FrequencySegment)
	assert.Equal(t, LevelHigh, s.MonetarySegment)
	assert.Equal(t, SegmentRecent, s.Segment)
}

func TestSegmentCustomersZeroOrdersExcluded(t *testing.T) {
	uid := int64(1)
	orders := []OrderRecord{
		{ID: 1, CustomerID: &uid, TotalAmount: 100_000, CreatedAt: ptrTime(date(2024, time.May, 1))},
	}
	customers := []CustomerRecord{
		{ID: uid, Username: "buyer"},
		{ID: 2, Username: "lurker"}, // never ordered
	}
	res := SegmentCustomers(orders, customers, date(2024, time.May, 10))
	require.Len(t, res.Customers, 1)
	assert.Equal(t, uid, res.Customers[0].CustomerID)
}

func TestSegmentCustomersSkipsUnparsableTimestamps(t *testing.T) {
	uid := int64(3)
	orders := []OrderRecord{
		{ID: 1, CustomerID: &uid, TotalAmount: 900_000}, // no CreatedAt
	}
	customers := []CustomerRecord{{ID: uid}}
	res := SegmentCustomers(orders, customers, date(2024, time.May, 10))
	assert.Empty(t, res.Customers)
	assert.Equal(t, 0, res.Summary.TotalCustomers)
}

func TestCompositeSegmentPrecedence(t *testing.T) {
	cases := []struct {
		r, f, m string
		want    string
	}{
		{LevelHigh, LevelHigh, LevelHigh, SegmentVIP},
		{LevelHigh, LevelHigh, LevelMedium, SegmentLoyal},
		{LevelHigh, LevelLow, LevelHigh, SegmentRecent},
		{LevelMedium, LevelHigh, LevelHigh, SegmentBigSpender},
		{LevelLow, LevelLow, LevelHigh, SegmentAtRisk},
		{LevelMedium, LevelMedium, LevelMedium, SegmentRegular},
		{LevelLow, LevelMedium, LevelLow, SegmentRegular},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, compositeSegment(c.r, c.f, c.m), "%s/%s/%s", c.r, c.f, c.m)
	}
}

func TestSegmentCustomersSummaryAverages(t *testing.T) {
	asOf := date(2024, time.March, 31)
	u1, u2 := int64(1), int64(2)
	orders := []OrderRecord{
		{ID: 1, CustomerID: &u1, TotalAmount: 600_000, CreatedAt: ptrTime(asOf.AddDate(0, 0, -10))},
		{ID: 2, CustomerID: &u2, TotalAmount: 100_000, CreatedAt: ptrTime(asOf.AddDate(0, 0, -15))},
	}
	customers := []CustomerRecord{{ID: u1}, {ID: u2}}
	res := SegmentCustomers(orders, customers, asOf)
	require.Equal(t, 2, res.Summary.TotalCustomers)
	assert.InDelta(t, 12.5, res.Summary.AvgRecencyDays, 1e-9)
	assert.InDelta(t, 1.0, res.Summary.AvgFrequency, 1e-9)
	assert.Equal(t, int64(350_000), res.Summary.AvgMonetary)
}
