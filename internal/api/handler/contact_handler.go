package handler

import (
	"github.com/gin-gonic/gin"

	"crm-service/internal/api/middleware"
	"crm-service/internal/dto"
	"crm-service/internal/service"
	pkgErrors "crm-service/pkg/errors"
	"crm-service/pkg/utils"
)

type ContactHandler struct {
	contactService service.ContactService
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Create 创建联系人
// @Summary 创建联系人
// @Tags 联系人
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ContactCreateRequest true "联系人信息"
// @Success 200 {object} utils.Response{data=dto.ContactResponse}
// @Router /api/v1/contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.ContactCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.contactService.Create(middleware.GetSession(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Get 联系人详情
// @Summary 联系人详情
// @Tags 联系人
// @Produce json
// @Security BearerAuth
// @Param id path int true "联系人ID"
// @Success 200 {object} utils.Response{data=dto.ContactResponse}
// @Router /api/v1/contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.contactService.Get(middleware.GetSession(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Update 更新联系人
// @Summary 更新联系人
// @Tags 联系人
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "联系人ID"
// @Param request body dto.ContactUpdateRequest true "联系人信息"
// @Success 200 {object} utils.Response{data=dto.ContactResponse}
// @Router /api/v1/contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.ContactUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.contactService.Update(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Delete 删除联系人
// @Summary 删除联系人
// @Tags 联系人
// @Produce json
// @Security BearerAuth
// @Param id path int true "联系人ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.contactService.Delete(middleware.GetSession(c), param.ID); err != nil {
		utils.Error(c, err)
		return
	}
	utils.SuccessWithMessage(c, "删除成功", nil)
}

// List 联系人列表
// @Summary 联系人列表
// @Tags 联系人
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键字"
// @Param account_id query int false "客户过滤"
// @Success 200 {object} utils.PageResponse{data=[]dto.ContactResponse}
// @Router /api/v1/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	var query dto.ContactListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	items, total, err := h.contactService.List(middleware.GetSession(c), &query)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.PageSuccess(c, items, total, query.GetPage(), query.GetPageSize())
}
