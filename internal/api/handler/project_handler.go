package handler

import (
	"github.com/gin-gonic/gin"

	"crm-service/internal/api/middleware"
	"crm-service/internal/dto"
	"crm-service/internal/service"
	pkgErrors "crm-service/pkg/errors"
	"crm-service/pkg/utils"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List 项目列表
// @Summary 项目列表
// @Description 仅返回成员关系或归属可见的项目
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键字"
// @Success 200 {object} utils.PageResponse{data=[]dto.ProjectResponse}
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	items, total, err := h.projectService.List(middleware.GetSession(c), &query)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.PageSuccess(c, items, total, query.GetPage(), query.GetPageSize())
}

// Get 项目详情
// @Summary 项目详情
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.projectService.Get(middleware.GetSession(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Create 创建项目
// @Summary 创建项目
// @Tags 项目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProjectCreateRequest true "项目信息"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.projectService.Create(middleware.GetSession(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Update 更新项目
// @Summary 更新项目
// @Tags 项目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param request body dto.ProjectUpdateRequest true "项目信息"
// @Success 200 {object} utils.Response{data=dto.ProjectResponse}
// @Router /api/v1/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.projectService.Update(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Delete 删除项目
// @Summary 删除项目(仅admin)
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.projectService.Delete(middleware.GetSession(c), param.ID); err != nil {
		utils.Error(c, err)
		return
	}
	utils.SuccessWithMessage(c, "删除成功", nil)
}
