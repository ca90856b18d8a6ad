package repository

import (
	"gorm.io/gorm"

	"crm-service/internal/model"
	pkgErrors "crm-service/pkg/errors"
)

type ContactRepository interface {
	Create(contact *model.Contact) error
	FindByID(id int64) (*model.Contact, error)
	Update(contact *model.Contact) error
	Delete(id int64) error
	List(page, pageSize int, keyword string, accountID *int64) ([]*model.Contact, int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *model.Contact) error {
	if err := r.db.Create(contact).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建联系人失败", err)
	}
	return nil
}

func (r *contactRepository) FindByID(id int64) (*model.Contact, error) {
	var contact model.Contact
	err := r.db.Preload("Account").First(&contact, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询联系人失败", err)
	}
	return &contact, nil
}

func (r *contactRepository) Update(contact *model.Contact) error {
	if err := r.db.Save(contact).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新联系人失败", err)
	}
	return nil
}

func (r *contactRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Contact{}, id)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除联系人失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *contactRepository) List(page, pageSize int, keyword string, accountID *int64) ([]*model.Contact, int64, error) {
	var contacts []*model.Contact
	var total int64

	query := r.db.Model(&model.Contact{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}
	if accountID != nil {
		query = query.Where("account_id = ?", *accountID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计联系人失败", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("Account").Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&contacts).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询联系人失败", err)
	}

	return contacts, total, nil
}
