package repository

import (
	"time"

	"gorm.io/gorm"

	"crm-service/internal/model"
	pkgErrors "crm-service/pkg/errors"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id int64) (*model.User, error)
	Update(user *model.User) error
	UpdateFields(id int64, fields map[string]interface{}) error
	UpdateLastLogin(id int64) error
	List(page, pageSize int, keyword string, role *string) ([]*model.User, int64, error)
	DeleteByEmail(email string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isDuplicateKeyError(err) {
			return pkgErrors.ErrEmailExists
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建用户失败", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询用户失败", err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询用户失败", err)
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新用户失败", err)
	}
	return nil
}

func (r *userRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新用户失败", err)
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(id int64) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login_at", time.Now()).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新登录时间失败", err)
	}
	return nil
}

func (r *userRepository) List(page, pageSize int, keyword string, role *string) ([]*model.User, int64, error) {
	var users []*model.User
	var total int64

	query := r.db.Model(&model.User{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("email LIKE ? OR name LIKE ?", like, like)
	}
	if role != nil {
		query = query.Where("role = ?", *role)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计用户失败", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询用户失败", err)
	}

	return users, total, nil
}

func (r *userRepository) DeleteByEmail(email string) error {
	result := r.db.Where("email = ?", email).Delete(&model.User{})
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除用户失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}
