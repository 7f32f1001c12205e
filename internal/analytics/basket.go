package analytics

import "sort"

// ProductPair is an unordered co-purchase pair, reported with the lower
// product id first.
type ProductPair struct {
	Product1ID   int64  `json:"product1Id"`
	Product1Name string `json:"product1Name"`
	Product2ID   int64  `json:"product2Id"`
	Product2Name string `json:"product2Name"`
	Frequency    int    `json:"frequency"`
}

type pairKey struct {
	lo, hi int64
}

// TopCoPurchasedPairs counts, per order, each unordered pair of distinct
// products appearing as separate lines, once per order. Lines without a
// product reference are skipped rather than emitting placeholder names;
// self-pairs are impossible by construction. Results are ordered by
// frequency descending, ties broken by ascending (product1, product2) ids
// for determinism.
func TopCoPurchasedPairs(lines []OrderLineRecord, limit int) []ProductPair {
	names := make(map[int64]string)
	productsByOrder := make(map[int64]map[int64]struct{})
	orderIDs := []int64{}
	for _, l := range lines {
		if l.ProductID == nil {
			continue
		}
		id := *l.ProductID
		if _, ok := names[id]; !ok {
			names[id] = l.ProductName
		}
		if productsByOrder[l.OrderID] == nil {
			productsByOrder[l.OrderID] = make(map[int64]struct{})
			orderIDs = append(orderIDs, l.OrderID)
		}
		productsByOrder[l.OrderID][id] = struct{}{}
	}

	freq := make(map[pairKey]int)
	for _, orderID := range orderIDs {
		set := productsByOrder[orderID]
		ids := make([]int64, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				freq[pairKey{ids[i], ids[j]}]++
			}
		}
	}

	pairs := make([]ProductPair, 0, len(freq))
	for k, n := range freq {
		pairs = append(pairs, ProductPair{
			Product1ID:   k.lo,
			Product1Name: names[k.lo],
			Product2ID:   k.hi,
			Product2Name: names[k.hi],
			Frequency:    n,
		})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Frequency != pairs[j].Frequency {
			return pairs[i].Frequency > pairs[j].Frequency
		}
		if pairs[i].Product1ID != pairs[j].Product1ID {
			return pairs[i].Product1ID < pairs[j].Product1ID
		}
		return pairs[i].Product2ID < pairs[j].Product2ID
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}
