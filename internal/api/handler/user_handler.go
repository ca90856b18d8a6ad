package handler

import (
	"github.com/gin-gonic/gin"

	"crm-service/internal/api/middleware"
	"crm-service/internal/dto"
	"crm-service/internal/service"
	pkgErrors "crm-service/pkg/errors"
	"crm-service/pkg/utils"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create 创建用户
// @Summary 创建用户(管理端)
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserCreateRequest true "创建用户请求"
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/v1/admin/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.userService.Create(middleware.GetSession(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// List 用户列表
// @Summary 用户列表(管理端)
// @Tags 用户管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键字"
// @Param role query string false "角色过滤"
// @Success 200 {object} utils.PageResponse{data=[]dto.UserResponse}
// @Router /api/v1/admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var query dto.UserListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	items, total, err := h.userService.List(middleware.GetSession(c), &query)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.PageSuccess(c, items, total, query.GetPage(), query.GetPageSize())
}

// UpdateRole 更新用户角色
// @Summary 更新用户角色(管理端)
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body dto.UserUpdateRoleRequest true "角色"
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/v1/admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.UserUpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.userService.UpdateRole(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// UpdateActive 启用/禁用用户
// @Summary 启用/禁用用户(管理端)
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param request body dto.UserUpdateActiveRequest true "状态"
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/v1/admin/users/{id}/active [put]
func (h *UserHandler) UpdateActive(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.UserUpdateActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.userService.UpdateActive(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Delete 按邮箱删除用户
// @Summary 删除用户(管理端)
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserDeleteRequest true "邮箱"
// @Success 200 {object} utils.Response
// @Router /api/v1/admin/users [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	var req dto.UserDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.userService.DeleteByEmail(middleware.GetSession(c), &req); err != nil {
		utils.Error(c, err)
		return
	}
	utils.SuccessWithMessage(c, "删除成功", nil)
}

// UpdateProfile 更新个人资料
// @Summary 更新个人资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserUpdateProfileRequest true "资料"
// @Success 200 {object} utils.Response{data=dto.UserResponse}
// @Router /api/v1/users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UserUpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.userService.UpdateProfile(middleware.GetSession(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// UpdatePassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UserUpdatePasswordRequest true "密码"
// @Success 200 {object} utils.Response
// @Router /api/v1/users/password [put]
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req dto.UserUpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.userService.UpdatePassword(middleware.GetSession(c), &req); err != nil {
		utils.Error(c, err)
		return
	}
	utils.SuccessWithMessage(c, "密码修改成功", nil)
}
