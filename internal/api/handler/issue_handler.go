package handler

import (
	"github.com/gin-gonic/gin"

	"crm-service/internal/api/middleware"
	"crm-service/internal/dto"
	"crm-service/internal/service"
	pkgErrors "crm-service/pkg/errors"
	"crm-service/pkg/utils"
)

type IssueHandler struct {
	issueService service.IssueService
}

func NewIssueHandler(issueService service.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// List 事项列表
// @Summary 项目事项列表
// @Tags 事项
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param status query string false "状态过滤"
// @Param priority query string false "优先级过滤"
// @Param type query string false "类型过滤"
// @Param epic_id query int false "史诗过滤"
// @Param sprint_id query int false "迭代过滤"
// @Success 200 {object} utils.PageResponse{data=[]dto.IssueResponse}
// @Router /api/v1/projects/{id}/issues [get]
func (h *IssueHandler) List(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var query service.IssueListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	items, total, err := h.issueService.ListByProject(middleware.GetSession(c), param.ID, &query)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.PageSuccess(c, items, total, query.GetPage(), query.GetPageSize())
}

// Create 创建事项
// @Summary 创建事项
// @Tags 事项
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param request body dto.IssueCreateRequest true "事项信息"
// @Success 200 {object} utils.Response{data=dto.IssueResponse}
// @Router /api/v1/projects/{id}/issues [post]
func (h *IssueHandler) Create(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.IssueCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.issueService.Create(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// UpdateStatus 更新事项状态
// @Summary 更新事项状态
// @Tags 事项
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "事项ID"
// @Param request body dto.IssueUpdateStatusRequest true "状态"
// @Success 200 {object} utils.Response{data=dto.IssueResponse}
// @Router /api/v1/issues/{id}/status [put]
func (h *IssueHandler) UpdateStatus(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.IssueUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.issueService.UpdateStatus(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}
