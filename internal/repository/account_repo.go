package repository

import (
	"gorm.io/gorm"

	"crm-service/internal/model"
	pkgErrors "crm-service/pkg/errors"
)

type AccountRepository interface {
	Create(account *model.Account) error
	FindByID(id int64) (*model.Account, error)
	Update(account *model.Account) error
	Delete(id int64) error
	List(page, pageSize int, keyword string, ownerID *int64) ([]*model.Account, int64, error)
	CountRelations(id int64) (*model.AccountRelationCounts, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *model.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if isDuplicateKeyError(err) {
			return pkgErrors.ErrAccountNameExists
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建客户失败", err)
	}
	return nil
}

func (r *accountRepository) FindByID(id int64) (*model.Account, error) {
	var account model.Account
	err := r.db.First(&account, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询客户失败", err)
	}
	return &account, nil
}

func (r *accountRepository) Update(account *model.Account) error {
	if err := r.db.Save(account).Error; err != nil {
		if isDuplicateKeyError(err) {
			return pkgErrors.ErrAccountNameExists
		}
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新客户失败", err)
	}
	return nil
}

func (r *accountRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Account{}, id)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除客户失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *accountRepository) List(page, pageSize int, keyword string, ownerID *int64) ([]*model.Account, int64, error) {
	var accounts []*model.Account
	var total int64

	query := r.db.Model(&model.Account{})
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计客户失败", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&accounts).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询客户失败", err)
	}

	return accounts, total, nil
}

// CountRelations 统计客户下联系人/商机/项目数量, 用于详情展示与删除前校验
func (r *accountRepository) CountRelations(id int64) (*model.AccountRelationCounts, error) {
	counts := &model.AccountRelationCounts{}
	if err := r.db.Model(&model.Contact{}).Where("account_id = ?", id).Count(&counts.Contacts).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计联系人失败", err)
	}
	if err := r.db.Model(&model.Case{}).Where("account_id = ?", id).Count(&counts.Cases).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计商机失败", err)
	}
	if err := r.db.Model(&model.Project{}).Where("account_id = ?", id).Count(&counts.Projects).Error; err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计项目失败", err)
	}
	return counts, nil
}
