package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/repository"
	"crm-service/pkg/constants"
	pkgErrors "crm-service/pkg/errors"
)

func newAuthzService(db *gorm.DB) AuthorizationService {
	return NewAuthorizationService(
		repository.NewProjectRepository(db),
		repository.NewProjectMemberRepository(db),
	)
}

func TestVisibleProjectIDsUnion(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthzService(db)

	user := createTestUser(t, db, "user@example.com", auth.RoleMember)
	other := createTestUser(t, db, "other@example.com", auth.RoleMember)

	// 既是owner又是member的项目只出现一次
	owned := createTestProject(t, db, "OWN-1", &user.ID, nil)
	addTestMember(t, db, owned.ID, user.ID, constants.ProjectRoleManager)
	memberOnly := createTestProject(t, db, "MEM-1", &other.ID, nil)
	addTestMember(t, db, memberOnly.ID, user.ID, constants.ProjectRoleMember)
	createTestProject(t, db, "OTH-1", &other.ID, nil)

	ids, err := svc.VisibleProjectIDs(user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{owned.ID, memberOnly.ID}, ids)
}

func TestVisibleProjectIDsEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthzService(db)

	user := createTestUser(t, db, "user@example.com", auth.RoleMember)
	other := createTestUser(t, db, "other@example.com", auth.RoleMember)
	createTestProject(t, db, "OTH-1", &other.ID, nil)

	ids, err := svc.VisibleProjectIDs(user.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAssertProjectAccessGuard(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthzService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleMember)
	member := createTestUser(t, db, "member@example.com", auth.RoleMember)
	stranger := createTestUser(t, db, "stranger@example.com", auth.RoleMember)

	project := createTestProject(t, db, "PRJ-1", &owner.ID, nil)
	addTestMember(t, db, project.ID, member.ID, constants.ProjectRoleMember)

	// 无会话
	_, err := svc.AssertProjectAccess(nil, project.ID)
	assert.Equal(t, pkgErrors.ErrUnauthorized, err)

	// owner可见
	got, err := svc.AssertProjectAccess(sessionFor(owner), project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)

	// member可见
	_, err = svc.AssertProjectAccess(sessionFor(member), project.ID)
	assert.NoError(t, err)

	// 无关用户不可见
	_, err = svc.AssertProjectAccess(sessionFor(stranger), project.ID)
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	// 项目不存在
	_, err = svc.AssertProjectAccess(sessionFor(owner), 99999)
	assert.Equal(t, pkgErrors.ErrRecordNotFound, err)
}

func TestAdminHasNoImplicitBypass(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthzService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleMember)
	admin := createTestUser(t, db, "admin@example.com", auth.RoleAdmin)
	project := createTestProject(t, db, "PRJ-1", &owner.ID, nil)

	// admin既非成员也非owner时同样不可见
	_, err := svc.AssertProjectAccess(sessionFor(admin), project.ID)
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	ids, err := svc.VisibleProjectIDs(admin.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCanAccessCaseViaAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthzService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleMember)
	bridged := createTestUser(t, db, "bridged@example.com", auth.RoleMember)
	stranger := createTestUser(t, db, "stranger@example.com", auth.RoleMember)

	account := &model.Account{Name: "Acme", OwnerID: &owner.ID}
	require.NoError(t, db.Create(account).Error)

	project := createTestProject(t, db, "ACM-1", &owner.ID, &account.ID)
	addTestMember(t, db, project.ID, bridged.ID, constants.ProjectRoleMember)

	c := &model.Case{Title: "商机", AccountID: &account.ID, OwnerID: &owner.ID}
	require.NoError(t, db.Create(c).Error)

	// 客户名下项目的成员通过桥接可访问
	ok, err := svc.CanAccessCaseViaAccount(bridged.ID, c)
	require.NoError(t, err)
	assert.True(t, ok)

	// 项目归属人通过桥接不可访问(桥接只认成员关系), 但负责人身份同样不构成授权
	ok, err = svc.CanAccessCaseViaAccount(owner.ID, c)
	require.NoError(t, err)
	assert.False(t, ok)

	// 无关用户不可访问
	ok, err = svc.CanAccessCaseViaAccount(stranger.ID, c)
	require.NoError(t, err)
	assert.False(t, ok)

	// 已链接项目的成员可访问
	linked := &model.Case{Title: "已转换商机", ProjectID: &project.ID}
	require.NoError(t, db.Create(linked).Error)
	ok, err = svc.CanAccessCaseViaAccount(bridged.ID, linked)
	require.NoError(t, err)
	assert.True(t, ok)

	// 无客户无链接项目的商机对谁都不可见, 包括负责人
	orphan := &model.Case{Title: "无客户商机", OwnerID: &owner.ID}
	require.NoError(t, db.Create(orphan).Error)
	ok, err = svc.CanAccessCaseViaAccount(owner.ID, orphan)
	require.NoError(t, err)
	assert.False(t, ok)
}
