package handler

import (
	"github.com/gin-gonic/gin"

	"crm-service/internal/api/middleware"
	"crm-service/internal/dto"
	"crm-service/internal/service"
	pkgErrors "crm-service/pkg/errors"
	"crm-service/pkg/utils"
)

type ProjectMemberHandler struct {
	memberService service.ProjectMemberService
}

func NewProjectMemberHandler(memberService service.ProjectMemberService) *ProjectMemberHandler {
	return &ProjectMemberHandler{memberService: memberService}
}

// List 项目成员列表
// @Summary 项目成员列表
// @Tags 项目成员
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} utils.Response{data=[]dto.ProjectMemberResponse}
// @Router /api/v1/projects/{id}/members [get]
func (h *ProjectMemberHandler) List(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	items, err := h.memberService.List(middleware.GetSession(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, items)
}

// Add 添加项目成员
// @Summary 添加项目成员
// @Description 重复添加同一用户返回409
// @Tags 项目成员
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param request body dto.ProjectMemberAddRequest true "成员信息"
// @Success 200 {object} utils.Response{data=dto.ProjectMemberResponse}
// @Router /api/v1/projects/{id}/members [post]
func (h *ProjectMemberHandler) Add(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.ProjectMemberAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.memberService.Add(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// UpdateRole 更新成员项目角色
// @Summary 更新成员项目角色
// @Tags 项目成员
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "成员ID"
// @Param request body dto.ProjectMemberUpdateRoleRequest true "角色"
// @Success 200 {object} utils.Response{data=dto.ProjectMemberResponse}
// @Router /api/v1/project-members/{id}/role [put]
func (h *ProjectMemberHandler) UpdateRole(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.ProjectMemberUpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.memberService.UpdateRole(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Remove 移除项目成员
// @Summary 移除项目成员
// @Tags 项目成员
// @Produce json
// @Security BearerAuth
// @Param id path int true "成员ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/project-members/{id} [delete]
func (h *ProjectMemberHandler) Remove(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.memberService.Remove(middleware.GetSession(c), param.ID); err != nil {
		utils.Error(c, err)
		return
	}
	utils.SuccessWithMessage(c, "移除成功", nil)
}
