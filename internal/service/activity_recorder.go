package service

import (
    "context"
    "time"

    "go.uber.org/zap"

    "github.com/d60-Lab/shop-analytics/internal/model"
    "github.com/d60-Lab/shop-analytics/internal/repository"
    "github.com/d60-Lab/shop-analytics/pkg/logger"
)

// ActivityRecorder 本地异步活动流水写入器。请求路径只入队不落库，
// 队列满则丢弃并告警，报表读取不受写入抖动影响。
type ActivityRecorder struct {
    repo repository.ActivityRepository
    ch   chan *model.Activity
}

// NewActivityRecorder 创建活动写入器
func NewActivityRecorder(repo repository.ActivityRepository, queueSize int) *ActivityRecorder {
    if queueSize <= 0 {
        queueSize = 4096
    }
    return &ActivityRecorder{repo: repo, ch: make(chan *model.Activity, queueSize)}
}

// Start 启动 workers 个落库协程，返回停止函数（停止前等待队列自然排空一小段时间）
func (r *ActivityRecorder) Start(workers int) func(context.Context) error {
    if workers <= 0 {
        workers = 2
    }
    stopCh := make(chan struct{})
    for i := 0; i < workers; i++ {
        go func() {
            for {
                select {
                case a := <-r.ch:
                    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
                    if err := r.repo.Create(ctx, a); err != nil {
                        logger.Warn("activity write failed", zap.String("type", a.Type), zap.Error(err))
                    }
                    cancel()
                case <-stopCh:
                    return
                }
            }
        }()
    }
    return func(ctx context.Context) error {
        close(stopCh)
        timeout := time.After(2 * time.Second)
        for {
            select {
            case <-timeout:
                return nil
            default:
                if len(r.ch) == 0 {
                    return nil
                }
                time.Sleep(50 * time.Millisecond)
            }
        }
    }
}

// Enqueue 入队一条活动；CreatedAt 为零值时补当前时间
func (r *ActivityRecorder) Enqueue(a *model.Activity) {
    if a.CreatedAt.IsZero() {
        a.CreatedAt = time.Now()
    }
    select {
    case r.ch <- a:
    default:
        logger.Warn("activity queue full, drop", zap.String("type", a.Type), zap.String("title", a.Title))
    }
}

// QueueLen 返回当前队列长度（采样值）。
func (r *ActivityRecorder) QueueLen() int { return len(r.ch) }
