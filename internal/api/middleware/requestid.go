package middleware

import (
    "github.com/gin-gonic/gin"
    "github.com/google/uuid"
)

// HeaderRequestID 请求链路标识头
const HeaderRequestID = "X-Request-ID"

// RequestID 透传或生成请求 ID，写回响应头
func RequestID() gin.HandlerFunc {
    return func(c *gin.Context) {
        id := c.GetHeader(HeaderRequestID)
        if id == "" {
            id = uuid.NewString()
        }
        c.Set(HeaderRequestID, id)
        c.Writer.Header().Set(HeaderRequestID, id)
        c.Next()
    }
}
