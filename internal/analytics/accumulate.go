package analytics

// Grouper accumulates per-key numeric metrics over a record stream while
// preserving first-seen key order. It backs every report that groups by
// period, product, status or customer: Add feeds sum+count, AddDistinct
// feeds a distinct-identifier count (unique customers vs raw orders).
//
// Keys are supplied by the caller; records with a missing (nil) grouping key
// must be skipped before calling Add, explicitly at the call site.
type Grouper[K comparable] struct {
	order    []K
	seen     map[K]struct{}
	sums     map[K]int64
	counts   map[K]int64
	distinct map[K]map[int64]struct{}
}

// NewGrouper creates an empty accumulator.
func NewGrouper[K comparable]() *Grouper[K] {
	return &Grouper[K]{
		seen:     make(map[K]struct{}),
		sums:     make(map[K]int64),
		counts:   make(map[K]int64),
		distinct: make(map[K]map[int64]struct{}),
	}
}

func (g *Grouper[K]) touch(key K) {
	if _, ok := g.seen[key]; !ok {
		g.seen[key] = struct{}{}
		g.order = append(g.order, key)
	}
}

// Seed registers keys with zero metrics, so skeleton periods appear in Keys
// even when no record lands in them.
func (g *Grouper[K]) Seed(keys ...K) {
	for _, k := range keys {
		g.touch(k)
	}
}

// Add accumulates amount into the key's sum and bumps its count.
func (g *Grouper[K]) Add(key K, amount int64) {
	g.touch(key)
	g.sums[key] += amount
	g.counts[key]++
}

// AddDistinct records an identifier under the key; Distinct reports how many
// unique identifiers were seen.
func (g *Grouper[K]) AddDistinct(key K, id int64) {
	g.touch(key)
	if _, ok := g.distinct[key]; !ok {
		g.distinct[key] = make(map[int64]struct{})
	}
	g.distinct[key][id] = struct{}{}
}

// Keys returns all keys in first-seen order.
func (g *Grouper[K]) Keys() []K { return g.order }

// Sum returns the accumulated amount for key (0 when absent).
func (g *Grouper[K]) Sum(key K) int64 { return g.sums[key] }

// Count returns how many records were added under key.
func (g *Grouper[K]) Count(key K) int64 { return g.counts[key] }

// Distinct returns the number of unique identifiers recorded under key.
func (g *Grouper[K]) Distinct(key K) int64 { return int64(len(g.distinct[key])) }
