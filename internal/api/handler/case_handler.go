package handler

import (
	"github.com/gin-gonic/gin"

	"crm-service/internal/api/middleware"
	"crm-service/internal/dto"
	"crm-service/internal/service"
	pkgErrors "crm-service/pkg/errors"
	"crm-service/pkg/utils"
)

type CaseHandler struct {
	caseService service.CaseService
}

func NewCaseHandler(caseService service.CaseService) *CaseHandler {
	return &CaseHandler{caseService: caseService}
}

// Create 创建商机
// @Summary 创建商机
// @Tags 商机
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CaseCreateRequest true "商机信息"
// @Success 200 {object} utils.Response{data=dto.CaseResponse}
// @Router /api/v1/cases [post]
func (h *CaseHandler) Create(c *gin.Context) {
	var req dto.CaseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.caseService.Create(middleware.GetSession(c), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Get 商机详情
// @Summary 商机详情
// @Tags 商机
// @Produce json
// @Security BearerAuth
// @Param id path int true "商机ID"
// @Success 200 {object} utils.Response{data=dto.CaseResponse}
// @Router /api/v1/cases/{id} [get]
func (h *CaseHandler) Get(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.caseService.Get(middleware.GetSession(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Update 更新商机
// @Summary 更新商机
// @Description 阶段可自由设置, 不强制管道顺序
// @Tags 商机
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "商机ID"
// @Param request body dto.CaseUpdateRequest true "商机信息"
// @Success 200 {object} utils.Response{data=dto.CaseResponse}
// @Router /api/v1/cases/{id} [put]
func (h *CaseHandler) Update(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}
	var req dto.CaseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.caseService.Update(middleware.GetSession(c), param.ID, &req)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}

// Delete 删除商机
// @Summary 删除商机
// @Tags 商机
// @Produce json
// @Security BearerAuth
// @Param id path int true "商机ID"
// @Success 200 {object} utils.Response
// @Router /api/v1/cases/{id} [delete]
func (h *CaseHandler) Delete(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	if err := h.caseService.Delete(middleware.GetSession(c), param.ID); err != nil {
		utils.Error(c, err)
		return
	}
	utils.SuccessWithMessage(c, "删除成功", nil)
}

// List 商机列表
// @Summary 商机列表
// @Description 仅返回本人负责及可见项目客户名下的商机
// @Tags 商机
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键字"
// @Param stage query string false "阶段过滤"
// @Success 200 {object} utils.PageResponse{data=[]dto.CaseResponse}
// @Router /api/v1/cases [get]
func (h *CaseHandler) List(c *gin.Context) {
	var query dto.CaseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	items, total, err := h.caseService.List(middleware.GetSession(c), &query)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.PageSuccess(c, items, total, query.GetPage(), query.GetPageSize())
}

// Convert 商机转项目
// @Summary 商机转项目
// @Description 已转换的商机返回409; 转换成功后商机阶段置为WON
// @Tags 商机
// @Produce json
// @Security BearerAuth
// @Param id path int true "商机ID"
// @Success 200 {object} utils.Response{data=dto.CaseConvertResponse}
// @Router /api/v1/cases/{id}/convert [post]
func (h *CaseHandler) Convert(c *gin.Context) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.caseService.Convert(middleware.GetSession(c), param.ID)
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, resp)
}
