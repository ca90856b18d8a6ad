package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crm-service/internal/dto"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/repository"
	"crm-service/pkg/constants"
	pkgErrors "crm-service/pkg/errors"
)

func newMemberService(db *gorm.DB) ProjectMemberService {
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	return NewProjectMemberService(
		memberRepo,
		repository.NewUserRepository(db),
		NewAuthorizationService(projectRepo, memberRepo),
	)
}

func TestMemberAddDuplicateConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleManager)
	user := createTestUser(t, db, "user@example.com", auth.RoleMember)
	project := createTestProject(t, db, "MEM-1", &owner.ID, nil)

	resp, err := svc.Add(sessionFor(owner), project.ID, &dto.ProjectMemberAddRequest{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, constants.ProjectRoleMember, resp.Role)
	assert.Equal(t, user.Email, resp.Email)

	_, err = svc.Add(sessionFor(owner), project.ID, &dto.ProjectMemberAddRequest{UserID: user.ID})
	assert.Equal(t, pkgErrors.ErrMemberExists, err)
}

func TestMemberAddRequiresManagerRank(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleMember)
	user := createTestUser(t, db, "user@example.com", auth.RoleMember)
	project := createTestProject(t, db, "MEM-1", &owner.ID, nil)

	// owner可见但系统等级不足
	_, err := svc.Add(sessionFor(owner), project.ID, &dto.ProjectMemberAddRequest{UserID: user.ID})
	assert.Equal(t, pkgErrors.ErrForbidden, err)
}

func TestMemberAddUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleManager)
	project := createTestProject(t, db, "MEM-1", &owner.ID, nil)

	_, err := svc.Add(sessionFor(owner), project.ID, &dto.ProjectMemberAddRequest{UserID: 99999})
	assert.Equal(t, pkgErrors.ErrRecordNotFound, err)
}

func TestMemberUpdateRoleAndRemove(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleManager)
	user := createTestUser(t, db, "user@example.com", auth.RoleMember)
	project := createTestProject(t, db, "MEM-1", &owner.ID, nil)

	added, err := svc.Add(sessionFor(owner), project.ID, &dto.ProjectMemberAddRequest{UserID: user.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateRole(sessionFor(owner), added.ID, &dto.ProjectMemberUpdateRoleRequest{Role: constants.ProjectRoleManager})
	require.NoError(t, err)
	assert.Equal(t, constants.ProjectRoleManager, updated.Role)

	require.NoError(t, svc.Remove(sessionFor(owner), added.ID))

	members, err := svc.List(sessionFor(owner), project.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}
