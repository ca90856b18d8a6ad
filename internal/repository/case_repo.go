package repository

import (
	"gorm.io/gorm"

	"crm-service/internal/model"
	pkgErrors "crm-service/pkg/errors"
)

// CaseAccessScope 商机可见范围
// 已转换商机跟随其链接项目的可见性; 未转换商机走客户桥接 —
// 其客户名下存在本人为成员的项目时可见。桥接只看成员关系, 不看项目归属
type CaseAccessScope struct {
	UserID     int64
	ProjectIDs []int64
}

type CaseListFilter struct {
	Stage   *string
	Keyword string
}

type CaseRepository interface {
	Create(c *model.Case) error
	FindByID(id int64) (*model.Case, error)
	Update(c *model.Case) error
	UpdateFields(id int64, fields map[string]interface{}) error
	Delete(id int64) error
	List(page, pageSize int, filter *CaseListFilter, scope *CaseAccessScope) ([]*model.Case, int64, error)
	MarkConverted(tx *gorm.DB, caseID, projectID int64, stage string) (int64, error)
}

type caseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) Create(c *model.Case) error {
	if err := r.db.Create(c).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建商机失败", err)
	}
	return nil
}

func (r *caseRepository) FindByID(id int64) (*model.Case, error) {
	var c model.Case
	err := r.db.Preload("Account").Preload("Contact").First(&c, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询商机失败", err)
	}
	return &c, nil
}

func (r *caseRepository) Update(c *model.Case) error {
	if err := r.db.Save(c).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新商机失败", err)
	}
	return nil
}

func (r *caseRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	if err := r.db.Model(&model.Case{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新商机失败", err)
	}
	return nil
}

func (r *caseRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Case{}, id)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除商机失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *caseRepository) List(page, pageSize int, filter *CaseListFilter, scope *CaseAccessScope) ([]*model.Case, int64, error) {
	var cases []*model.Case
	var total int64

	query := r.db.Model(&model.Case{})
	if filter != nil {
		if filter.Keyword != "" {
			query = query.Where("title LIKE ?", "%"+filter.Keyword+"%")
		}
		if filter.Stage != nil {
			query = query.Where("stage = ?", *filter.Stage)
		}
	}
	if scope != nil {
		memberAccounts := r.db.Model(&model.Project{}).
			Select("projects.account_id").
			Joins("JOIN project_members ON project_members.project_id = projects.id").
			Where("project_members.user_id = ? AND projects.account_id IS NOT NULL", scope.UserID)
		if len(scope.ProjectIDs) > 0 {
			query = query.Where(
				"project_id IN ? OR (project_id IS NULL AND account_id IN (?))",
				scope.ProjectIDs, memberAccounts,
			)
		} else {
			query = query.Where("project_id IS NULL AND account_id IN (?)", memberAccounts)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计商机失败", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("Account").Preload("Contact").
		Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&cases).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询商机失败", err)
	}

	return cases, total, nil
}

// MarkConverted 在事务内将商机置为已转换
// 仅当 project_id 仍为空时生效, 返回受影响行数, 0 表示已被并发转换
func (r *caseRepository) MarkConverted(tx *gorm.DB, caseID, projectID int64, stage string) (int64, error) {
	result := tx.Model(&model.Case{}).
		Where("id = ? AND project_id IS NULL", caseID).
		Updates(map[string]interface{}{
			"stage":      stage,
			"project_id": projectID,
		})
	if result.Error != nil {
		return 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新商机转换状态失败", result.Error)
	}
	return result.RowsAffected, nil
}
