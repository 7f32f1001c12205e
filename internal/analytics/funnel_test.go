package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFunnel(t *testing.T) {
	stages := ComputeFunnel(200, 80, 50)
	require.Len(t, stages, 3)

	assert.Equal(t, StageRegistered, stages[0].Label)
	assert.Equal(t, int64(200), stages[0].Count)
	assert.InDelta(t, 100.0, stages[0].PercentOfBase, 1e-9)

	assert.Equal(t, StagePlacedOrder, stages[1].Label)
	assert.InDelta(t, 40.0, stages[1].PercentOfBase, 1e-9)

	assert.Equal(t, StageCompletedOrder, stages[2].Label)
	assert.InDelta(t, 25.0, stages[2].PercentOfBase, 1e-9)
}

func TestComputeFunnelZeroBase(t *testing.T) {
	for _, s := range ComputeFunnel(0, 0, 0) {
		assert.Zero(t, s.Count)
		assert.Zero(t, s.PercentOfBase)
	}
}

func TestComputeFunnelRounding(t *testing.T) {
	stages := ComputeFunnel(3, 1, 1)
	assert.InDelta(t, 33.3, stages[1].PercentOfBase, 1e-9)
}
