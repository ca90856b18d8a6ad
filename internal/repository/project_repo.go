package repository

import (
	"gorm.io/gorm"

	"crm-service/internal/model"
	pkgErrors "crm-service/pkg/errors"
)

type ProjectRepository interface {
	Create(tx *gorm.DB, project *model.Project) error
	FindByID(id int64) (*model.Project, error)
	FindDetailByID(id int64) (*model.Project, error)
	Update(project *model.Project) error
	Delete(id int64) error
	ListByIDs(ids []int64, page, pageSize int, keyword string) ([]*model.Project, int64, error)
	ListOwnedIDs(userID int64) ([]int64, error)
	KeyExists(key string) (bool, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create 支持事务句柄, 商机转换时与成员写入同事务
func (r *projectRepository) Create(tx *gorm.DB, project *model.Project) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Create(project).Error; err != nil {
		if isDuplicateKeyError(err) {
			return pkgErrors.ErrProjectKeyExists
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建项目失败", err)
	}
	return nil
}

func (r *projectRepository) FindByID(id int64) (*model.Project, error) {
	var project model.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) FindDetailByID(id int64) (*model.Project, error) {
	var project model.Project
	err := r.db.Preload("Owner").Preload("Account").
		Preload("Members").Preload("Members.User").
		Preload("Sprints").
		First(&project, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return &project, nil
}

func (r *projectRepository) Update(project *model.Project) error {
	if err := r.db.Save(project).Error; err != nil {
		if isDuplicateKeyError(err) {
			return pkgErrors.ErrProjectKeyExists
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新项目失败", err)
	}
	return nil
}

func (r *projectRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Project{}, id)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除项目失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

// ListByIDs 仅在给定ID集合内分页, 空集合直接返回空页
func (r *projectRepository) ListByIDs(ids []int64, page, pageSize int, keyword string) ([]*model.Project, int64, error) {
	if len(ids) == 0 {
		return []*model.Project{}, 0, nil
	}

	var projects []*model.Project
	var total int64

	query := r.db.Model(&model.Project{}).Where("id IN ?", ids)
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR `key` LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计项目失败", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("Owner").Preload("Account").
		Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&projects).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}

	return projects, total, nil
}

func (r *projectRepository) ListOwnedIDs(userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Project{}).Where("owner_id = ?", userID).Pluck("id", &ids).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目失败", err)
	}
	return ids, nil
}

func (r *projectRepository) KeyExists(key string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Project{}).Where("`key` = ?", key).Count(&count).Error
	if err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目标识失败", err)
	}
	return count > 0, nil
}
