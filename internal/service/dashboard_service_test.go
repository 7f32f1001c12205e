package service

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "gorm.io/gorm"

    "github.com/d60-Lab/shop-analytics/internal/model"
    "github.com/d60-Lab/shop-analytics/internal/repository"
)

func newTestDashboardService(db *gorm.DB) *dashboardService {
    return &dashboardService{
        orders:   repository.NewOrderRepository(db),
        details:  repository.NewOrderDetailRepository(db),
        users:    repository.NewUserRepository(db),
        products: repository.NewProductRepository(db),
        now:      func() time.Time { return fixedNow },
    }
}

func TestDashboardTopProductsOrderedByPrice(t *testing.T) {
    db := setupServiceDB(t)
    svc := newTestDashboardService(db)

    seedCategory(t, db, 1, "Fruits")
    cat := int64(1)
    seedProduct(t, db, 1, "honey", 30_000, 5, &cat)
    seedProduct(t, db, 2, "bread", 10_000, 12, nil)
    seedProduct(t, db, 3, "cheese", 20_000, 7, &cat)

    report := svc.TopProducts(context.Background(), 2)
    assert.Equal(t, SourceLive, report["source"])

    rows := report["data"].([]Report)
    require.Len(t, rows, 2)
    assert.Equal(t, "honey", rows[0]["name"])
    assert.Equal(t, int64(30_000), rows[0]["price"])
    assert.Equal(t, "Fruits", rows[0]["category"])
    assert.Equal(t, "cheese", rows[1]["name"])
}

func TestDashboardTopProductsCategoryFallback(t *testing.T) {
    db := setupServiceDB(t)
    svc := newTestDashboardService(db)

    seedProduct(t, db, 1, "bread", 10_000, 12, nil)

    report := svc.TopProducts(context.Background(), 0) // 缺省取 5
    rows := report["data"].([]Report)
    require.Len(t, rows, 1)
    assert.Equal(t, model.UncategorizedName, rows[0]["category"])
}

func TestDashboardTopProductsSyntheticWhenRepoDown(t *testing.T) {
    db := setupServiceDB(t)
    svc := newTestDashboardService(db)
    svc.products = failingProductRepo{}

    report := svc.TopProducts(context.Background(), 5)
    assert.Equal(t, SourceSynthetic, report["source"])
}
