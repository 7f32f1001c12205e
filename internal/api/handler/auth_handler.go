package handler

import (
    "errors"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/shop-analytics/internal/service"
    "github.com/d60-Lab/shop-analytics/pkg/response"
)

type loginRequest struct {
    Username string `json:"username" binding:"required,min=3,max=64"`
    Password string `json:"password" binding:"required,min=6"`
}

// Login 登录
// @Summary 管理端登录，签发 JWT
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
    var req loginRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    token, user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
    if err != nil {
        if errors.Is(err, service.ErrInvalidCredentials) {
            response.Unauthorized(c, err.Error())
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{
        "token": token,
        "user": gin.H{
            "id":       user.ID,
            "username": user.Username,
            "email":    user.Email,
            "role":     user.Role,
        },
    })
}
