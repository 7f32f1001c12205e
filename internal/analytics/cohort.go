package analytics

import (
	"fmt"
	"sort"
	"strconv"
)

// OffsetRetention is one cell of a cohort row: activity of the cohort at a
// given month offset from registration. M0 is the registration month itself;
// members who registered but never ordered that month legitimately keep M0
// below 100%.
type OffsetRetention struct {
	Offset      int     `json:"offset"`
	Label       string  `json:"label"` // M0, M1, ...
	ActiveCount int     `json:"count"`
	Rate        float64 `json:"rate"` // percent, 1 decimal
}

// CohortRow is one registration-month cohort with per-offset retention.
type CohortRow struct {
	Cohort    string            `json:"cohort"` // 2006-01
	Size      int               `json:"size"`
	Retention []OffsetRetention `json:"retention"`
}

// monthDiff computes the month offset between two 2006-01 keys.
func monthDiff(from, to string) int {
	fy, _ := strconv.Atoi(from[:4])
	fm, _ := strconv.Atoi(from[5:7])
	ty, _ := strconv.Atoi(to[:4])
	tm, _ := strconv.Atoi(to[5:7])
	return (ty-fy)*12 + (tm - fm)
}

// BuildCohorts groups customers by registration month and, for every
// calendar month at or after the cohort's month (bounded by the months
// present in the customer population), counts distinct cohort members that
// placed at least one order in that month. Customers without a registration
// timestamp are excluded.
func BuildCohorts(customers []CustomerRecord, orders []OrderRecord) []CohortRow {
	cohortMembers := make(map[string]map[int64]struct{})
	for _, c := range customers {
		if c.RegisteredAt == nil {
			continue
		}
		key := BucketKey(*c.RegisteredAt, GranularityMonthly)
		if cohortMembers[key] == nil {
			cohortMembers[key] = make(map[int64]struct{})
		}
		cohortMembers[key][c.ID] = struct{}{}
	}

	months := make([]string, 0, len(cohortMembers))
	for m := range cohortMembers {
		months = append(months, m)
	}
	sort.Strings(months)

	// customer -> month -> ordered at least once
	orderedIn := make(map[int64]map[string]struct{})
	for _, o := range orders {
		if o.CustomerID == nil || o.CreatedAt == nil {
			continue
		}
		m := BucketKey(*o.CreatedAt, GranularityMonthly)
		if orderedIn[*o.CustomerID] == nil {
			orderedIn[*o.CustomerID] = make(map[string]struct{})
		}
		orderedIn[*o.CustomerID][m] = struct{}{}
	}

	rows := make([]CohortRow, 0, len(months))
	for _, cohort := range months {
		members := cohortMembers[cohort]
		row := CohortRow{Cohort: cohort, Size: len(members), Retention: []OffsetRetention{}}
		for _, target := range months {
			if target < cohort {
				continue
			}
			active := 0
			for id := range members {
				if _, ok := orderedIn[id][target]; ok {
					active++
				}
			}
			rate := 0.0
			if row.Size > 0 {
				rate = Round1(float64(active) * 100 / float64(row.Size))
			}
			offset := monthDiff(cohort, target)
			row.Retention = append(row.Retention, OffsetRetention{
				Offset:      offset,
				Label:       fmt.Sprintf("M%d", offset),
				ActiveCount: active,
				Rate:        rate,
			})
		}
		sort.Slice(row.Retention, func(i, j int) bool { return row.Retention[i].Offset < row.Retention[j].Offset })
		rows = append(rows, row)
	}
	return rows
}
