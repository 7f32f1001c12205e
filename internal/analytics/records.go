// Package analytics implements the batch aggregation engine behind the
// reporting endpoints: time bucketing, multi-key grouping, RFM segmentation,
// cohort retention, basket co-occurrence and funnel computation. All
// functions are pure over in-memory record snapshots; fetching the snapshot
// is the caller's job.
package analytics

import "time"

// OrderRecord is the read-only order projection the engine consumes.
// CreatedAt is nil for legacy rows that never recorded a timestamp; such
// records are excluded from any time-bucketed computation, never treated as
// the zero time.
type OrderRecord struct {
	ID          int64
	CustomerID  *int64
	TotalAmount int64 // integer currency units, >= 0
	Status      string
	CreatedAt   *time.Time
}

// OrderLineRecord is one order line. ProductID is nil when the line only
// carries the denormalized name; grouping by name must still work then.
type OrderLineRecord struct {
	OrderID      int64
	ProductID    *int64
	ProductName  string
	CategoryName string // "" when the product or category link is absent
	UnitPrice    int64
	Quantity     int
}

// SubTotal is UnitPrice * Quantity, recomputed rather than stored.
func (l OrderLineRecord) SubTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// CustomerRecord is the read-only customer projection.
type CustomerRecord struct {
	ID           int64
	Username     string
	Email        string
	RegisteredAt *time.Time
}

// ProductRecord is the read-only product projection.
type ProductRecord struct {
	ID           int64
	Name         string
	CategoryName string
}
