package handler

import (
	"github.com/gin-gonic/gin"

	"crm-service/internal/api/middleware"
	"crm-service/internal/dto"
	"crm-service/internal/service"
	pkgErrors "crm-service/pkg/errors"
	"crm-service/pkg/utils"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login 用户登录
// @Summary 用户登录
// @Description 邮箱密码登录, auth_type 支持 local/ldap, 默认local
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录请求"
// @Success 200 {object} utils.Response{data=dto.LoginResponse}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// RefreshToken 刷新Token
// @Summary 刷新Token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "刷新请求"
// @Success 200 {object} utils.Response{data=dto.LoginResponse}
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// GetCurrentUser 当前用户信息
// @Summary 当前用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response{data=dto.UserInfo}
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	session := middleware.GetSession(c)

	resp, err := h.authService.GetCurrentUser(session)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}
