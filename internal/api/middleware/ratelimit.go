package middleware

import (
    "net/http"
    "sync"

    "github.com/gin-gonic/gin"
    "golang.org/x/time/rate"

    "github.com/d60-Lab/shop-analytics/pkg/response"
)

// RateLimit 按客户端 IP 限流；rps <= 0 时退化为直通
func RateLimit(rps float64, burst int) gin.HandlerFunc {
    if rps <= 0 {
        return func(c *gin.Context) { c.Next() }
    }
    if burst <= 0 {
        burst = int(rps)
    }

    var mu sync.Mutex
    limiters := make(map[string]*rate.Limiter)

    return func(c *gin.Context) {
        ip := c.ClientIP()
        mu.Lock()
        lim, ok := limiters[ip]
        if !ok {
            lim = rate.NewLimiter(rate.Limit(rps), burst)
            limiters[ip] = lim
        }
        mu.Unlock()

        if !lim.Allow() {
            c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Response{Code: 429, Message: "rate limit exceeded"})
            return
        }
        c.Next()
    }
}
