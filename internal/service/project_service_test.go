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
	"crm-service/pkg/constants"
	pkgErrors "crm-service/pkg/errors"
)

func newProjectService(db *gorm.DB) ProjectService {
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	return NewProjectService(
		db,
		projectRepo,
		memberRepo,
		repository.NewAccountRepository(db),
		repository.NewIssueRepository(db),
		NewAuthorizationService(projectRepo, memberRepo),
	)
}

func TestProjectListOnlyVisible(t *testing.T) {
	db := setupTestDB(t)
	svc := newProjectService(db)

	user := createTestUser(t, db, "user@example.com", auth.RoleMember)
	other := createTestUser(t, db, "other@example.com", auth.RoleMember)

	visible := createTestProject(t, db, "VIS-1", &other.ID, nil)
	addTestMember(t, db, visible.ID, user.ID, constants.ProjectRoleMember)
	createTestProject(t, db, "HID-1", &other.ID, nil)

	items, total, err := svc.List(sessionFor(user), &dto.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "VIS-1", items[0].Key)
}

func TestProjectListEmptyVisibility(t *testing.T) {
	db := setupTestDB(t)
	svc := newProjectService(db)

	user := createTestUser(t, db, "user@example.com", auth.RoleMember)
	other := createTestUser(t, db, "other@example.com", auth.RoleMember)
	createTestProject(t, db, "HID-1", &other.ID, nil)

	items, total, err := svc.List(sessionFor(user), &dto.PageQuery{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestProjectCreateSeedsManagerMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newProjectService(db)

	manager := createTestUser(t, db, "manager@example.com", auth.RoleManager)

	resp, err := svc.Create(sessionFor(manager), &dto.ProjectCreateRequest{
		Name: "新项目",
		Key:  "NEW-1",
	})
	require.NoError(t, err)

	var members []model.ProjectMember
	require.NoError(t, db.Where("project_id = ?", resp.ID).Find(&members).Error)
	require.Len(t, members, 1)
	assert.Equal(t, manager.ID, members[0].UserID)
	assert.Equal(t, constants.ProjectRoleManager, members[0].Role)
}

func TestProjectCreateRequiresManagerRank(t *testing.T) {
	db := setupTestDB(t)
	svc := newProjectService(db)

	member := createTestUser(t, db, "member@example.com", auth.RoleMember)
	_, err := svc.Create(sessionFor(member), &dto.ProjectCreateRequest{Name: "x", Key: "X-1"})
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	_, err = svc.Create(nil, &dto.ProjectCreateRequest{Name: "x", Key: "X-1"})
	assert.Equal(t, pkgErrors.ErrUnauthorized, err)
}

func TestProjectCreateDuplicateKey(t *testing.T) {
	db := setupTestDB(t)
	svc := newProjectService(db)

	manager := createTestUser(t, db, "manager@example.com", auth.RoleManager)
	_, err := svc.Create(sessionFor(manager), &dto.ProjectCreateRequest{Name: "a", Key: "DUP-1"})
	require.NoError(t, err)

	_, err = svc.Create(sessionFor(manager), &dto.ProjectCreateRequest{Name: "b", Key: "DUP-1"})
	assert.Equal(t, pkgErrors.ErrProjectKeyExists, err)
}

func TestProjectDeleteAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newProjectService(db)

	manager := createTestUser(t, db, "manager@example.com", auth.RoleManager)
	admin := createTestUser(t, db, "admin@example.com", auth.RoleAdmin)
	project := createTestProject(t, db, "DEL-1", &manager.ID, nil)

	// manager即使是owner也不能删除
	err := svc.Delete(sessionFor(manager), project.ID)
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	require.NoError(t, svc.Delete(sessionFor(admin), project.ID))

	var count int64
	require.NoError(t, db.Model(&model.Project{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProjectUpdateGuardThenRank(t *testing.T) {
	db := setupTestDB(t)
	svc := newProjectService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleManager)
	memberUser := createTestUser(t, db, "member@example.com", auth.RoleMember)
	outsider := createTestUser(t, db, "outsider@example.com", auth.RoleManager)

	project := createTestProject(t, db, "UPD-1", &owner.ID, nil)
	addTestMember(t, db, project.ID, memberUser.ID, constants.ProjectRoleMember)

	newName := "改名"

	// 可见但等级不足
	_, err := svc.Update(sessionFor(memberUser), project.ID, &dto.ProjectUpdateRequest{Name: &newName})
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	// 等级够但不可见
	_, err = svc.Update(sessionFor(outsider), project.ID, &dto.ProjectUpdateRequest{Name: &newName})
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	resp, err := svc.Update(sessionFor(owner), project.ID, &dto.ProjectUpdateRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "改名", resp.Name)
}
