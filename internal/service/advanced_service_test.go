package service

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "gorm.io/gorm"

    "github.com/d60-Lab/shop-analytics/internal/analytics"
    "github.com/d60-Lab/shop-analytics/internal/model"
    "github.com/d60-Lab/shop-analytics/internal/repository"
)

func newTestAdvancedService(db *gorm.DB) *advancedService {
    return &advancedService{
        orders:  repository.NewOrderRepository(db),
        details: repository.NewOrderDetailRepository(db),
        users:   repository.NewUserRepository(db),
        now:     func() time.Time { return fixedNow },
    }
}

func TestRFMAnalysisLive(t *testing.T) {
    db := setupServiceDB(t)
    svc := newTestAdvancedService(db)

    uid := int64(1)
    seedUser(t, db, uid, "vip", fixedNow.AddDate(-1, 0, 0))
    for i := int64(1); i <= 4; i++ {
        seedOrder(t, db, i, &uid, 600_000, model.OrderStatusCompleted, fixedNow.AddDate(0, 0, -int(i)))
    }

    report := svc.RFMAnalysis(context.Background())
    assert.Equal(t, SourceLive, report["source"])

    customers := report["customers"].([]analytics.CustomerSegment)
    require.Len(t, customers, 1)
    assert.Equal(t, analytics.SegmentVIP, customers[0].Segment)
    assert.Equal(t, int64(2_400_000), customers[0].MonetaryValue)
}

func TestFunnelAnalysisCounts(t *testing.T) {
    db := setupServiceDB(t)
    svc := newTestAdvancedService(db)

    u1, u2, u3 := int64(1), int64(2), int64(3)
    seedUser(t, db, u1, "a", fixedNow)
    seedUser(t, db, u2, "b", fixedNow)
    seedUser(t, db, u3, "c", fixedNow)
    seedOrder(t, db, 1, &u1, 10_000, model.OrderStatusCompleted, fixedNow)
    seedOrder(t, db, 2, &u2, 10_000, model.OrderStatusPending, fixedNow)

    report := svc.FunnelAnalysis(context.Background())
    stages := report["stages"].([]analytics.FunnelStage)
    require.Len(t, stages, 3)
    assert.Equal(t, int64(3), stages[0].Count)
    assert.Equal(t, int64(2), stages[1].Count)
    assert.Equal(t, int64(1), stages[2].Count)
    assert.InDelta(t, 33.3, stages[2].PercentOfBase, 1e-9)
}

// 进程内购物篮分析与存储侧共现查询对同一数据集必须一致
func TestBasketAnalysisMatchesCrossSellQuery(t *testing.T) {
    db := setupServiceDB(t)
    svc := newTestAdvancedService(db)

    require.NoError(t, db.Create(&model.Product{ID: 1, Name: "apples", Price: 5_000}).Error)
    require.NoError(t, db.Create(&model.Product{ID: 2, Name: "bread", Price: 2_000}).Error)
    require.NoError(t, db.Create(&model.Product{ID: 3, Name: "milk", Price: 3_000}).Error)

    uid := int64(1)
    seedUser(t, db, uid, "a", fixedNow)
    p1, p2, p3 := int64(1), int64(2), int64(3)
    seedOrder(t, db, 1, &uid, 0, model.OrderStatusCompleted, fixedNow)
    seedOrder(t, db, 2, &uid, 0, model.OrderStatusCompleted, fixedNow)
    details := []model.OrderDetail{
        {ID: 1, OrderID: 1, ProductID: &p1, Name: "apples", Price: 5_000, Quantity: 1},
        {ID: 2, OrderID: 1, ProductID: &p2, Name: "bread", Price: 2_000, Quantity: 2},
        {ID: 3, OrderID: 2, ProductID: &p1, Name: "apples", Price: 5_000, Quantity: 1},
        {ID: 4, OrderID: 2, ProductID: &p2, Name: "bread", Price: 2_000, Quantity: 1},
        {ID: 5, OrderID: 2, ProductID: &p3, Name: "milk", Price: 3_000, Quantity: 1},
    }
    require.NoError(t, db.Create(&details).Error)

    report := svc.BasketAnalysis(context.Background(), 10)
    pairs := report["pairs"].([]analytics.ProductPair)
    require.NotEmpty(t, pairs)
    assert.Equal(t, int64(1), pairs[0].Product1ID)
    assert.Equal(t, int64(2), pairs[0].Product2ID)
    assert.Equal(t, 2, pairs[0].Frequency)

    sqlPairs, err := repository.NewOrderDetailRepository(db).CrossSellPairs(context.Background(), 10)
    require.NoError(t, err)
    require.Len(t, sqlPairs, len(pairs))
    for i, p := range pairs {
        assert.Equal(t, p.Product1ID, sqlPairs[i].Product1ID)
        assert.Equal(t, p.Product2ID, sqlPairs[i].Product2ID)
        assert.Equal(t, int64(p.Frequency), sqlPairs[i].Frequency)
    }
}

func TestUserCohortAnalysisLive(t *testing.T) {
    db := setupServiceDB(t)
    svc := newTestAdvancedService(db)

    uid := int64(1)
    seedUser(t, db, uid, "a", time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC))
    seedOrder(t, db, 1, &uid, 10_000, model.OrderStatusCompleted, time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC))

    report := svc.UserCohortAnalysis(context.Background())
    cohorts := report["cohorts"].([]analytics.CohortRow)
    require.Len(t, cohorts, 1)
    assert.Equal(t, "2024-04", cohorts[0].Cohort)
    assert.Equal(t, 1, cohorts[0].Size)
}

func TestOrderCompletionRate(t *testing.T) {
    db := setupServiceDB(t)
    svc := newTestAdvancedService(db)

    uid := int64(1)
    seedUser(t, db, uid, "a", fixedNow)
    day := time.Date(2024, time.June, 14, 9, 0, 0, 0, time.UTC)
    seedOrder(t, db, 1, &uid, 1, model.OrderStatusCompleted, day)
    seedOrder(t, db, 2, &uid, 1, model.OrderStatusCompleted, day)
    seedOrder(t, db, 3, &uid, 1, model.OrderStatusCancelled, day)
    seedOrder(t, db, 4, &uid, 1, model.OrderStatusPending, day)

    report := svc.OrderCompletionRate(context.Background(), 7)
    summary := report["summary"].(Report)
    assert.Equal(t, int64(4), summary["totalOrders"])
    assert.InDelta(t, 50.0, summary["completionRate"].(float64), 1e-9)
    assert.InDelta(t, 25.0, summary["cancellationRate"].(float64), 1e-9)

    var dayRow Report
    for _, r := range report["data"].([]Report) {
        if r["date"] == "2024-06-14" {
            dayRow = r
        }
    }
    require.NotNil(t, dayRow)
    assert.Equal(t, int64(2), dayRow["completed"])
}

func TestDayHourHeatmapMondayFirst(t *testing.T) {
    db := setupServiceDB(t)
    svc := newTestAdvancedService(db)

    uid := int64(1)
    seedUser(t, db, uid, "a", fixedNow)
    // 2024-06-10 是周一
    seedOrder(t, db, 1, &uid, 1, model.OrderStatusCompleted, time.Date(2024, time.June, 10, 14, 0, 0, 0, time.UTC))

    report := svc.DayHourHeatmap(context.Background(), 7)
    matrix := report["matrix"].([][]int64)
    require.Len(t, matrix, 7)
    assert.Equal(t, int64(1), matrix[0][14])
    assert.Equal(t, int64(1), report["maxCount"])
}

func TestSeasonalTrendsQuarterKeys(t *testing.T) {
    db := setupServiceDB(t)
    svc := newTestAdvancedService(db)

    uid := int64(1)
    seedUser(t, db, uid, "a", fixedNow)
    seedOrder(t, db, 1, &uid, 100, model.OrderStatusCompleted, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))
    seedOrder(t, db, 2, &uid, 200, model.OrderStatusCompleted, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))

    report := svc.SeasonalTrends(context.Background(), 1)
    rows := report["data"].([]Report)
    require.Len(t, rows, 2)
    assert.Equal(t, "2024-Q1", rows[0]["quarter"])
    assert.Equal(t, "2024-Q2", rows[1]["quarter"])
    assert.Equal(t, int64(100), rows[0]["revenue"])
}
