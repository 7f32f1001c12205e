package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(orderID, productID int64, name string) OrderLineRecord {
	return OrderLineRecord{OrderID: orderID, ProductID: &productID, ProductName: name}
}

func TestTopCoPurchasedPairsOncePerOrder(t *testing.T) {
	lines := []OrderLineRecord{
		// order 1: A and B, with A appearing on two lines
		line(1, 10, "A"),
		line(1, 10, "A"),
		line(1, 20, "B"),
		// order 2: B and A again, reversed line order
		line(2, 20, "B"),
		line(2, 10, "A"),
		// order 3: A, B, C
		line(3, 10, "A"),
		line(3, 20, "B"),
		line(3, 30, "C"),
	}

	pairs := TopCoPurchasedPairs(lines, 0)
	require.Len(t, pairs, 3)

	top := pairs[0]
	assert.Equal(t, int64(10), top.Product1ID)
	assert.Equal(t, int64(20), top.Product2ID)
	assert.Equal(t, "A", top.Product1Name)
	assert.Equal(t, "B", top.Product2Name)
	// (A,B) counted once per order regardless of line order or duplicates
	assert.Equal(t, 3, top.Frequency)

	// (A,C) and (B,C) each appear once, tie broken by ascending ids
	assert.Equal(t, int64(10), pairs[1].Product1ID)
	assert.Equal(t, int64(30), pairs[1].Product2ID)
	assert.Equal(t, int64(20), pairs[2].Product1ID)
	assert.Equal(t, int64(30), pairs[2].Product2ID)
}

func TestTopCoPurchasedPairsSkipsMissingProduct(t *testing.T) {
	lines := []OrderLineRecord{
		line(1, 10, "A"),
		{OrderID: 1, ProductName: "orphan"}, // nil ProductID
	}
	assert.Empty(t, TopCoPurchasedPairs(lines, 10))
}

func TestTopCoPurchasedPairsLimit(t *testing.T) {
	lines := []OrderLineRecord{
		line(1, 1, "a"), line(1, 2, "b"), line(1, 3, "c"), line(1, 4, "d"),
	}
	pairs := TopCoPurchasedPairs(lines, 2)
	require.Len(t, pairs, 2)
	// all frequencies tie at 1, so ordering falls back to ascending ids
	assert.Equal(t, int64(1), pairs[0].Product1ID)
	assert.Equal(t, int64(2), pairs[0].Product2ID)
	assert.Equal(t, int64(1), pairs[1].Product1ID)
	assert.Equal(t, int64(3), pairs[1].Product2ID)
}

func TestTopCoPurchasedPairsSingleProductOrder(t *testing.T) {
	assert.Empty(t, TopCoPurchasedPairs([]OrderLineRecord{line(1, 10, "A")}, 10))
}
