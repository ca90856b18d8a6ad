package handler

import (
	"github.com/gin-gonic/gin"

	"crm-service/internal/api/middleware"
	"crm-service/internal/dto"
	"crm-service/internal/service"
	pkgErrors "crm-service/pkg/errors"
	"crm-service/pkg/utils"
)

type AccountHandler struct {
	accountService service.AccountService
}

func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// Create 创建客户
// @Summary 创建客户
// @Tags 客户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AccountCreateRequest true "客户信息"
// @Success 200 {object} utils.Response{data=dto.AccountResponse}
// @Router /api/v1/accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.AccountCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.accountService.Create(middleware.GetSession(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Get 客户详情
// @Summary 客户详情
// @Tags 客户
// @Produce json
// @Security BearerAuth
// @Param id path int true "客户ID"
// @Success 200 {object} utils.Response{data=dto.AccountResponse}
// @Router /api/v1/accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.accountService.Get(middleware.GetSession(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Update 更新客户
// @Summary 更新客户
// @Tags 客户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "客户ID"
// @Param request body dto.AccountUpdateRequest true "客户信息"
// @Success 200 {object} utils.Response{data=dto.AccountResponse}
// @Router /api/v1/accounts/{id} [put]
func (h *AccountHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.AccountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.accountService.Update(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Delete 删除客户
// @Summary 删除客户
// @Description 存在关联联系人/商机/项目时返回409
// @Tags 客户
// @Produce json
// @Security BearerAuth
// @Param id path int true "客户ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.accountService.Delete(middleware.GetSession(c), param.ID); err != nil {
		utils.Error(c, err)
		return
	}
	utils.SuccessWithMessage(c, "删除成功", nil)
}

// List 客户列表
// @Summary 客户列表
// @Tags 客户
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键字"
// @Success 200 {object} utils.PageResponse{data=[]dto.AccountResponse}
// @Router /api/v1/accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	var query dto.AccountListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	items, total, err := h.accountService.List(middleware.GetSession(c), &query)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.PageSuccess(c, items, total, query.GetPage(), query.GetPageSize())
}
