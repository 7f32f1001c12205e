package service

import (
    "context"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func newTestTrafficService(t *testing.T) (*trafficService, *miniredis.Miniredis) {
    t.Helper()
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })
    return &trafficService{rdb: rdb, now: func() time.Time { return fixedNow }}, mr
}

func TestTrafficRecordAndReport(t *testing.T) {
    svc, _ := newTestTrafficService(t)
    ctx := context.Background()

    day := time.Date(2024, time.June, 14, 10, 0, 0, 0, time.UTC)
    require.NoError(t, svc.RecordVisit(ctx, day, 4))
    require.NoError(t, svc.RecordVisit(ctx, day, 2))
    require.NoError(t, svc.RecordVisit(ctx, fixedNow, 1))

    report := svc.Report(ctx, 7)
    assert.Equal(t, SourceLive, report["source"])

    rows := report["data"].([]Report)
    require.Len(t, rows, 7)
    byDate := map[string]Report{}
    for _, r := range rows {
        byDate[r["date"].(string)] = r
    }
    assert.Equal(t, int64(2), byDate["2024-06-14"]["visits"])
    assert.Equal(t, int64(6), byDate["2024-06-14"]["pageViews"])
    assert.Equal(t, int64(1), byDate["2024-06-15"]["visits"])

    summary := report["summary"].(Report)
    assert.Equal(t, int64(3), summary["totalVisits"])
    assert.Equal(t, int64(7), summary["totalPageViews"])
}

func TestTrafficSyntheticWhenEmpty(t *testing.T) {
    svc, _ := newTestTrafficService(t)

    report := svc.Report(context.Background(), 7)
    assert.Equal(t, SourceSynthetic, report["source"])
    assert.Len(t, report["data"].([]Report), 7)
}

func TestTrafficSyntheticWhenRedisDown(t *testing.T) {
    svc, mr := newTestTrafficService(t)
    mr.Close()

    report := svc.Report(context.Background(), 7)
    assert.Equal(t, SourceSynthetic, report["source"])
}
