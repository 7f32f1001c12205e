package service

import (
    "context"
    "fmt"
    "time"

    "github.com/d60-Lab/shop-analytics/internal/repository"
)

// ActivityService 活动流展示
type ActivityService interface {
    // Recent 最近活动；数据源失败或为空时回落合成活动流
    Recent(ctx context.Context, limit int) Report
}

type activityService struct {
    repo repository.ActivityRepository
    now  func() time.Time
}

// NewActivityService 创建活动流服务
func NewActivityService(repo repository.ActivityRepository) ActivityService {
    return &activityService{repo: repo, now: time.Now}
}

func (s *activityService) Recent(ctx context.Context, limit int) Report {
    if limit <= 0 {
        limit = 10
    }
    items, err := s.repo.ListRecent(ctx, limit)
    if err != nil {
        reportFailure("activity-feed", err)
        return syntheticReport(Report{"data": syntheticActivityRows(limit, s.now())})
    }
    if len(items) == 0 {
        return syntheticReport(Report{"data": syntheticActivityRows(limit, s.now())})
    }

    now := s.now()
    rows := make([]Report, 0, len(items))
    for _, a := range items {
        username := ""
        if a.User != nil {
            username = a.User.Username
        }
        rows = append(rows, Report{
            "id":           a.ID,
            "activityType": a.Type,
            "title":        a.Title,
            "description":  a.Description,
            "username":     username,
            "entityType":   a.EntityType,
            "entityId":     a.EntityID,
            "createdAt":    a.CreatedAt,
            "timeAgo":      timeAgo(a.CreatedAt, now),
        })
    }
    return liveReport(Report{"data": rows})
}

// timeAgo 活动时间的人性化展示
func timeAgo(at, now time.Time) string {
    d := now.Sub(at)
    switch {
    case d < time.Minute:
        return "just now"
    case d < time.Hour:
        return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
    case d < 24*time.Hour:
        return fmt.Sprintf("%d hours ago", int(d.Hours()))
    default:
        return fmt.Sprintf("%d days ago", int(d.Hours()/24))
    }
}
