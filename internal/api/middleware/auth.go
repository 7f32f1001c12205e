package middleware

import (
    "strings"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/shop-analytics/internal/model"
    "github.com/d60-Lab/shop-analytics/internal/service"
    "github.com/d60-Lab/shop-analytics/pkg/response"
)

// 鉴权通过后写入上下文的键
const (
    CtxUserID   = "auth.userId"
    CtxUsername = "auth.username"
    CtxRole     = "auth.role"
)

// AdminAuth 管理端 JWT 鉴权：校验 Bearer token 且要求 ADMIN 角色
func AdminAuth(secret string) gin.HandlerFunc {
    return func(c *gin.Context) {
        header := c.GetHeader("Authorization")
        if !strings.HasPrefix(header, "Bearer ") {
            response.Unauthorized(c, "missing bearer token")
            return
        }
        claims, err := service.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
        if err != nil {
            response.Unauthorized(c, "invalid token")
            return
        }
        if claims.Role != model.RoleAdmin {
            response.Unauthorized(c, "admin role required")
            return
        }
        c.Set(CtxUserID, claims.UserID)
        c.Set(CtxUsername, claims.Username)
        c.Set(CtxRole, claims.Role)
        c.Next()
    }
}
