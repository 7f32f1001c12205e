package analytics

// FunnelStage is one step of the registration/order/completion funnel.
// PercentOfBase is relative to the first stage's population.
type FunnelStage struct {
	Label         string  `json:"stage"`
	Count         int64   `json:"count"`
	PercentOfBase float64 `json:"percentage"`
}

// Funnel stage labels.
const (
	StageRegistered     = "Registered"
	StagePlacedOrder    = "Placed Order"
	StageCompletedOrder = "Completed Order"
)

// ComputeFunnel builds the three conversion stages. A zero base yields zero
// percentages on every stage, never a division by zero.
func ComputeFunnel(totalUsers, usersWithAnyOrder, usersWithCompletedOrder int64) []FunnelStage {
	pct := func(n int64) float64 {
		if totalUsers <= 0 {
			return 0
		}
		return Round1(float64(n) * 100 / float64(totalUsers))
	}
	basePct := 0.0
	if totalUsers > 0 {
		basePct = 100
	}
	return []FunnelStage{
		{Label: StageRegistered, Count: totalUsers, PercentOfBase: basePct},
		{Label: StagePlacedOrder, Count: usersWithAnyOrder, PercentOfBase: pct(usersWithAnyOrder)},
		{Label: StageCompletedOrder, Count: usersWithCompletedOrder, PercentOfBase: pct(usersWithCompletedOrder)},
	}
}
