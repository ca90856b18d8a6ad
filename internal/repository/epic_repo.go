package repository

import (
	"gorm.io/gorm"

	"crm-service/internal/model"
	pkgErrors "crm-service/pkg/errors"
)

type EpicRepository interface {
	Create(epic *model.Epic) error
	FindByID(id int64) (*model.Epic, error)
	Update(epic *model.Epic) error
	Delete(id int64) error
	ListByProject(projectID int64) ([]*model.Epic, error)
}

type epicRepository struct {
	db *gorm.DB
}

func NewEpicRepository(db *gorm.DB) EpicRepository {
	return &epicRepository{db: db}
}

func (r *epicRepository) Create(epic *model.Epic) error {
	if err := r.db.Create(epic).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建史诗失败", err)
	}
	return nil
}

func (r *epicRepository) FindByID(id int64) (*model.Epic, error) {
	var epic model.Epic
	err := r.db.First(&epic, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询史诗失败", err)
	}
	return &epic, nil
}

func (r *epicRepository) Update(epic *model.Epic) error {
	if err := r.db.Save(epic).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新史诗失败", err)
	}
	return nil
}

func (r *epicRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Epic{}, id)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除史诗失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *epicRepository) ListByProject(projectID int64) ([]*model.Epic, error) {
	var epics []*model.Epic
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&epics).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询史诗失败", err)
	}
	return epics, nil
}
