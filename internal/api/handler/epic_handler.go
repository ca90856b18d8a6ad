package handler

import (
	"github.com/gin-gonic/gin"

	"crm-service/internal/api/middleware"
	"crm-service/internal/dto"
	"crm-service/internal/service"
	pkgErrors "crm-service/pkg/errors"
	"crm-service/pkg/utils"
)

type EpicHandler struct {
	epicService service.EpicService
}

func NewEpicHandler(epicService service.EpicService) *EpicHandler {
	return &EpicHandler{epicService: epicService}
}

// List 史诗列表
// @Summary 项目史诗列表
// @Tags 史诗
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} utils.Response{data=[]dto.EpicResponse}
// @Router /api/v1/projects/{id}/epics [get]
func (h *EpicHandler) List(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	items, err := h.epicService.ListByProject(middleware.GetSession(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, items)
}

// Create 创建史诗
// @Summary 创建史诗
// @Tags 史诗
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param request body dto.EpicCreateRequest true "史诗信息"
// @Success 200 {object} utils.Response{data=dto.EpicResponse}
// @Router /api/v1/projects/{id}/epics [post]
func (h *EpicHandler) Create(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.EpicCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.epicService.Create(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Update 更新史诗
// @Summary 更新史诗
// @Tags 史诗
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "史诗ID"
// @Param request body dto.EpicUpdateRequest true "史诗信息"
// @Success 200 {object} utils.Response{data=dto.EpicResponse}
// @Router /api/v1/epics/{id} [put]
func (h *EpicHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.EpicUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.epicService.Update(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Delete 删除史诗
// @Summary 删除史诗
// @Tags 史诗
// @Produce json
// @Security BearerAuth
// @Param id path int true "史诗ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/epics/{id} [delete]
func (h *EpicHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.epicService.Delete(middleware.GetSession(c), param.ID); err != nil {
		utils.Error(c, err)
		return
	}
	utils.SuccessWithMessage(c, "删除成功", nil)
}
