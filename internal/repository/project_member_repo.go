package repository

import (
	"gorm.io/gorm"

	"crm-service/internal/model"
	pkgErrors "crm-service/pkg/errors"
)

type ProjectMemberRepository interface {
	Create(tx *gorm.DB, member *model.ProjectMember) error
	FindByID(id int64) (*model.ProjectMember, error)
	FindByProjectAndUser(projectID, userID int64) (*model.ProjectMember, error)
	ListByProject(projectID int64) ([]*model.ProjectMember, error)
	ListProjectIDsByUser(userID int64) ([]int64, error)
	UpdateRole(id int64, role string) error
	Delete(id int64) error
	ExistsByUserAndAccount(userID, accountID int64) (bool, error)
}

type projectMemberRepository struct {
	db *gorm.DB
}

func NewProjectMemberRepository(db *gorm.DB) ProjectMemberRepository {
	return &projectMemberRepository{db: db}
}

func (r *projectMemberRepository) Create(tx *gorm.DB, member *model.ProjectMember) error {
	if tx == nil {
		tx = r.db
	}
	if err := tx.Create(member).Error; err != nil {
		if isDuplicateKeyError(err) {
			return pkgErrors.ErrMemberExists
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "添加项目成员失败", err)
	}
	return nil
}

func (r *projectMemberRepository) FindByID(id int64) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := r.db.Preload("User").First(&member, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目成员失败", err)
	}
	return &member, nil
}

func (r *projectMemberRepository) FindByProjectAndUser(projectID, userID int64) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目成员失败", err)
	}
	return &member, nil
}

func (r *projectMemberRepository) ListByProject(projectID int64) ([]*model.ProjectMember, error) {
	var members []*model.ProjectMember
	err := r.db.Preload("User").Where("project_id = ?", projectID).Order("created_at ASC").Find(&members).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询项目成员失败", err)
	}
	return members, nil
}

func (r *projectMemberRepository) ListProjectIDsByUser(userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.ProjectMember{}).Where("user_id = ?", userID).Pluck("project_id", &ids).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询成员项目失败", err)
	}
	return ids, nil
}

func (r *projectMemberRepository) UpdateRole(id int64, role string) error {
	result := r.db.Model(&model.ProjectMember{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新项目成员失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *projectMemberRepository) Delete(id int64) error {
	result := r.db.Delete(&model.ProjectMember{}, id)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "移除项目成员失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

// ExistsByUserAndAccount 用户是否为该客户名下任一项目的成员, 商机桥接访问使用
func (r *projectMemberRepository) ExistsByUserAndAccount(userID, accountID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProjectMember{}).
		Joins("JOIN projects ON projects.id = project_members.project_id").
		Where("project_members.user_id = ? AND projects.account_id = ? AND projects.deleted_at IS NULL", userID, accountID).
		Count(&count).Error
	if err != nil {
		return false, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询客户项目成员失败", err)
	}
	return count > 0, nil
}
