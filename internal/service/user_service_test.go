package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-service/internal/dto"
	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/crypto"
	"crm-service/internal/repository"
	pkgErrors "crm-service/pkg/errors"
)

func TestUserCreateAdminGate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	admin := createTestUser(t, db, "admin@example.com", auth.RoleAdmin)
	manager := createTestUser(t, db, "manager@example.com", auth.RoleManager)
	member := createTestUser(t, db, "member@example.com", auth.RoleMember)

	// admin与manager可创建
	resp, err := svc.Create(sessionFor(admin), &dto.UserCreateRequest{
		Email:    "new1@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, string(auth.RoleMember), resp.Role)

	_, err = svc.Create(sessionFor(manager), &dto.UserCreateRequest{
		Email:    "new2@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// member被拒, 未认证401
	_, err = svc.Create(sessionFor(member), &dto.UserCreateRequest{
		Email:    "new3@example.com",
		Password: "password123",
	})
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	_, err = svc.Create(nil, &dto.UserCreateRequest{Email: "new4@example.com", Password: "password123"})
	assert.Equal(t, pkgErrors.ErrUnauthorized, err)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	admin := createTestUser(t, db, "admin@example.com", auth.RoleAdmin)

	_, err := svc.Create(sessionFor(admin), &dto.UserCreateRequest{
		Email:    "dup@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Create(sessionFor(admin), &dto.UserCreateRequest{
		Email:    "dup@example.com",
		Password: "password123",
	})
	assert.Equal(t, pkgErrors.ErrEmailExists, err)
}

func TestUserCannotChangeOwnRoleOrDisableSelf(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	admin := createTestUser(t, db, "admin@example.com", auth.RoleAdmin)

	_, err := svc.UpdateRole(sessionFor(admin), admin.ID, &dto.UserUpdateRoleRequest{Role: "member"})
	assert.Error(t, err)

	active := false
	_, err = svc.UpdateActive(sessionFor(admin), admin.ID, &dto.UserUpdateActiveRequest{IsActive: &active})
	assert.Error(t, err)

	err = svc.DeleteByEmail(sessionFor(admin), &dto.UserDeleteRequest{Email: admin.Email})
	assert.Error(t, err)
}

func TestUserUpdateRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	admin := createTestUser(t, db, "admin@example.com", auth.RoleAdmin)
	target := createTestUser(t, db, "target@example.com", auth.RoleMember)

	resp, err := svc.UpdateRole(sessionFor(admin), target.ID, &dto.UserUpdateRoleRequest{Role: "manager"})
	require.NoError(t, err)
	assert.Equal(t, "manager", resp.Role)

	// 未知角色被拒
	_, err = svc.UpdateRole(sessionFor(admin), target.ID, &dto.UserUpdateRoleRequest{Role: "superuser"})
	assert.Error(t, err)
}

func TestUpdatePasswordRules(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUserRepository(db)
	svc := NewUserService(repo)

	hash, err := crypto.HashPassword("oldpassword1")
	require.NoError(t, err)
	user := createTestUser(t, db, "user@example.com", auth.RoleMember)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).
		Update("password_hash", hash).Error)

	session := sessionFor(user)

	// 新旧相同
	err = svc.UpdatePassword(session, &dto.UserUpdatePasswordRequest{
		CurrentPassword: "oldpassword1",
		NewPassword:     "oldpassword1",
	})
	assert.Error(t, err)

	// 当前密码错误
	err = svc.UpdatePassword(session, &dto.UserUpdatePasswordRequest{
		CurrentPassword: "wrongpassword",
		NewPassword:     "newpassword1",
	})
	assert.Error(t, err)

	// 新密码过短
	err = svc.UpdatePassword(session, &dto.UserUpdatePasswordRequest{
		CurrentPassword: "oldpassword1",
		NewPassword:     "short",
	})
	assert.Error(t, err)

	// 合法修改后可用新密码校验
	err = svc.UpdatePassword(session, &dto.UserUpdatePasswordRequest{
		CurrentPassword: "oldpassword1",
		NewPassword:     "newpassword1",
	})
	require.NoError(t, err)

	updated, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, crypto.CheckPassword("newpassword1", updated.PasswordHash))
}
