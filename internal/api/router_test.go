package api

import (
    "bytes"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/d60-Lab/shop-analytics/internal/api/handler"
    "github.com/d60-Lab/shop-analytics/internal/model"
    "github.com/d60-Lab/shop-analytics/internal/repository"
    "github.com/d60-Lab/shop-analytics/internal/service"
)

const testSecret = "router-test-secret"

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
    t.Helper()
    gin.SetMode(gin.TestMode)

    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
    require.NoError(t, err)
    require.NoError(t, repository.InitSchema(db))

    orderRepo := repository.NewOrderRepository(db)
    detailRepo := repository.NewOrderDetailRepository(db)
    userRepo := repository.NewUserRepository(db)
    productRepo := repository.NewProductRepository(db)
    activityRepo := repository.NewActivityRepository(db)

    h := handler.New(
        service.NewReportService(orderRepo, detailRepo, userRepo, productRepo),
        service.NewAdvancedReportService(orderRepo, detailRepo, userRepo),
        service.NewDashboardService(orderRepo, detailRepo, userRepo, productRepo),
        service.NewActivityService(activityRepo),
        service.NewTrafficService(nil),
        service.NewAuthService(userRepo, nil, testSecret, time.Hour),
    )
    return NewRouter(h, RouterConfig{JWTSecret: testSecret}), db
}

func seedAccount(t *testing.T, db *gorm.DB, username, role string) {
    t.Helper()
    hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
    require.NoError(t, err)
    u := model.User{Username: username, Email: username + "@example.com", Password: string(hash), Role: role}
    require.NoError(t, db.Create(&u).Error)
}

func login(t *testing.T, r *gin.Engine, username string) string {
    t.Helper()
    body, _ := json.Marshal(map[string]string{"username": username, "password": "s3cret"})
    w := httptest.NewRecorder()
    req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
    req.Header.Set("Content-Type", "application/json")
    r.ServeHTTP(w, req)
    require.Equal(t, http.StatusOK, w.Code)

    var resp struct {
        Data struct {
            Token string `json:"token"`
        } `json:"data"`
    }
    require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
    require.NotEmpty(t, resp.Data.Token)
    return resp.Data.Token
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
    w := httptest.NewRecorder()
    req := httptest.NewRequest(http.MethodGet, path, nil)
    if token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }
    // gzip 中间件已启用，但测试不声明 Accept-Encoding，响应保持明文
    r.ServeHTTP(w, req)
    return w
}

func TestAnalyticsRequiresAuth(t *testing.T) {
    r, _ := setupRouter(t)

    w := get(r, "/api/analytics/sales-trends", "")
    assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnalyticsRejectsNonAdmin(t *testing.T) {
    r, db := setupRouter(t)
    seedAccount(t, db, "customer", model.RoleUser)

    token := login(t, r, "customer")
    w := get(r, "/api/analytics/sales-trends", token)
    assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAnalyticsAdminAccess(t *testing.T) {
    r, db := setupRouter(t)
    seedAccount(t, db, "admin", model.RoleAdmin)
    token := login(t, r, "admin")

    w := get(r, "/api/analytics/sales-trends?granularity=daily&timespan=7d", token)
    require.Equal(t, http.StatusOK, w.Code)

    var resp struct {
        Data map[string]any `json:"data"`
    }
    require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
    assert.Equal(t, "live", resp.Data["source"])
}

func TestInvalidGranularityIs400(t *testing.T) {
    r, db := setupRouter(t)
    seedAccount(t, db, "admin", model.RoleAdmin)
    token := login(t, r, "admin")

    w := get(r, "/api/analytics/sales-trends?granularity=hourly", token)
    assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidDateIs400(t *testing.T) {
    r, db := setupRouter(t)
    seedAccount(t, db, "admin", model.RoleAdmin)
    token := login(t, r, "admin")

    w := get(r, "/api/analytics/sales-by-date?startDate=2024-13-01&endDate=2024-01-31", token)
    assert.Equal(t, http.StatusBadRequest, w.Code)

    w = get(r, "/api/analytics/sales-by-date?startDate=2024-01-01&endDate=not-a-date", token)
    assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
    r, db := setupRouter(t)
    seedAccount(t, db, "admin", model.RoleAdmin)

    body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong-pass"})
    w := httptest.NewRecorder()
    req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
    req.Header.Set("Content-Type", "application/json")
    r.ServeHTTP(w, req)
    assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthz(t *testing.T) {
    r, _ := setupRouter(t)
    w := get(r, "/healthz", "")
    assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardAndAdvancedRoutes(t *testing.T) {
    r, db := setupRouter(t)
    seedAccount(t, db, "admin", model.RoleAdmin)
    token := login(t, r, "admin")

    for _, path := range []string{
        "/api/dashboard/stats",
        "/api/dashboard/recent-orders",
        "/api/dashboard/top-products",
        "/api/advanced-analytics/rfm",
        "/api/advanced-analytics/funnel",
        "/api/advanced-analytics/cohort",
        "/api/analytics/order-status",
        "/api/analytics/export?format=csv&days=7",
    } {
        w := get(r, path, token)
        assert.Equal(t, http.StatusOK, w.Code, path)
    }
}
