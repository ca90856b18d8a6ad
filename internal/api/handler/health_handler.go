package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	pkgErrors "crm-service/pkg/errors"
	"crm-service/pkg/utils"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check 服务健康检查
// @Summary 健康检查
// @Tags 健康检查
// @Produce json
// @Success 200 {object} utils.Response
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	utils.Success(c, gin.H{"status": "ok"})
}

// CheckDB 数据库健康检查
// @Summary 数据库健康检查
// @Tags 健康检查
// @Produce json
// @Success 200 {object} utils.Response
// @Router /health/db [get]
func (h *HealthHandler) CheckDB(c *gin.Context) {
	var result int
	if err := h.db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		utils.Error(c, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "数据库连接异常", err))
		return
	}
	utils.Success(c, gin.H{"status": "ok"})
}
