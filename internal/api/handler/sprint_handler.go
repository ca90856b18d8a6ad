package handler

import (
	"github.com/gin-gonic/gin"

	"crm-service/internal/api/middleware"
	"crm-service/internal/dto"
	"crm-service/internal/service"
	pkgErrors "crm-service/pkg/errors"
	"crm-service/pkg/utils"
)

type SprintHandler struct {
	sprintService service.SprintService
}

func NewSprintHandler(sprintService service.SprintService) *SprintHandler {
	return &SprintHandler{sprintService: sprintService}
}

// List 迭代列表
// @Summary 项目迭代列表
// @Tags 迭代
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} utils.Response{data=[]dto.SprintResponse}
// @Router /api/v1/projects/{id}/sprints [get]
func (h *SprintHandler) List(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	items, err := h.sprintService.ListByProject(middleware.GetSession(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, items)
}

// Create 创建迭代
// @Summary 创建迭代(manager及以上)
// @Tags 迭代
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param request body dto.SprintCreateRequest true "迭代信息"
// @Success 200 {object} utils.Response{data=dto.SprintResponse}
// @Router /api/v1/projects/{id}/sprints [post]
func (h *SprintHandler) Create(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.SprintCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.sprintService.Create(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// UpdateStatus 更新迭代状态
// @Summary 更新迭代状态(manager及以上)
// @Tags 迭代
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "迭代ID"
// @Param request body dto.SprintUpdateStatusRequest true "状态"
// @Success 200 {object} utils.Response{data=dto.SprintResponse}
// @Router /api/v1/sprints/{id}/status [put]
func (h *SprintHandler) UpdateStatus(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.SprintUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.sprintService.UpdateStatus(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}
