package repository

import (
	"gorm.io/gorm"

	"crm-service/internal/model"
	pkgErrors "crm-service/pkg/errors"
)

type SprintRepository interface {
	Create(sprint *model.Sprint) error
	FindByID(id int64) (*model.Sprint, error)
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
	ListByProject(projectID int64) ([]*model.Sprint, error)
}

type sprintRepository struct {
	db *gorm.DB
}

func NewSprintRepository(db *gorm.DB) SprintRepository {
	return &sprintRepository{db: db}
}

func (r *sprintRepository) Create(sprint *model.Sprint) error {
	if err := r.db.Create(sprint).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建迭代失败", err)
	}
	return nil
}

func (r *sprintRepository) FindByID(id int64) (*model.Sprint, error) {
	var sprint model.Sprint
	err := r.db.First(&sprint, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询迭代失败", err)
	}
	return &sprint, nil
}

func (r *sprintRepository) UpdateStatus(id int64, status string) error {
	result := r.db.Model(&model.Sprint{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新迭代状态失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *sprintRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Sprint{}, id)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除迭代失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *sprintRepository) ListByProject(projectID int64) ([]*model.Sprint, error) {
	var sprints []*model.Sprint
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&sprints).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询迭代失败", err)
	}
	return sprints, nil
}
