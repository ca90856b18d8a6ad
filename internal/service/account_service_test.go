package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crm-service/internal/dto"
	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/repository"
	pkgErrors "crm-service/pkg/errors"
)

func newAccountService(db *gorm.DB) AccountService {
	return NewAccountService(
		repository.NewAccountRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestAccountCreateAndDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountService(db)
	member := createTestUser(t, db, "member@example.com", auth.RoleMember)

	resp, err := svc.Create(sessionFor(member), &dto.AccountCreateRequest{Name: "Acme"})
	require.NoError(t, err)
	require.NotNil(t, resp.Owner)
	assert.Equal(t, member.ID, resp.Owner.ID)

	_, err = svc.Create(sessionFor(member), &dto.AccountCreateRequest{Name: "Acme"})
	assert.Equal(t, pkgErrors.ErrAccountNameExists, err)
}

func TestAccountCreateViewerForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountService(db)
	viewer := createTestUser(t, db, "viewer@example.com", auth.RoleViewer)

	_, err := svc.Create(sessionFor(viewer), &dto.AccountCreateRequest{Name: "Acme"})
	assert.Equal(t, pkgErrors.ErrForbidden, err)
}

func TestAccountDeleteBlockedByRelations(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountService(db)
	manager := createTestUser(t, db, "manager@example.com", auth.RoleManager)

	account := &model.Account{Name: "Acme", OwnerID: &manager.ID}
	require.NoError(t, db.Create(account).Error)
	contact := &model.Contact{AccountID: &account.ID, FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, db.Create(contact).Error)

	err := svc.Delete(sessionFor(manager), account.ID)
	assert.Equal(t, pkgErrors.ErrAccountHasRelations, err)

	// 移除关联后可删除
	require.NoError(t, db.Delete(contact).Error)
	require.NoError(t, svc.Delete(sessionFor(manager), account.ID))
}

func TestAccountGetWithCounts(t *testing.T) {
	db := setupTestDB(t)
	svc := newAccountService(db)
	member := createTestUser(t, db, "member@example.com", auth.RoleMember)

	account := &model.Account{Name: "Acme", OwnerID: &member.ID}
	require.NoError(t, db.Create(account).Error)
	require.NoError(t, db.Create(&model.Contact{AccountID: &account.ID, FirstName: "A", LastName: "B"}).Error)
	require.NoError(t, db.Create(&model.Case{Title: "Deal", AccountID: &account.ID}).Error)

	resp, err := svc.Get(sessionFor(member), account.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.Counts)
	assert.Equal(t, int64(1), resp.Counts.Contacts)
	assert.Equal(t, int64(1), resp.Counts.Cases)
	assert.Zero(t, resp.Counts.Projects)
}
