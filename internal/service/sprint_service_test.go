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

func newSprintService(db *gorm.DB) SprintService {
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	return NewSprintService(
		repository.NewSprintRepository(db),
		repository.NewIssueRepository(db),
		NewAuthorizationService(projectRepo, memberRepo),
	)
}

func TestSprintCreateRequiresManagerRankOnTopOfGuard(t *testing.T) {
	db := setupTestDB(t)
	svc := newSprintService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleManager)
	memberUser := createTestUser(t, db, "member@example.com", auth.RoleMember)
	outsider := createTestUser(t, db, "outsider@example.com", auth.RoleManager)

	project := createTestProject(t, db, "SPR-1", &owner.ID, nil)
	addTestMember(t, db, project.ID, memberUser.ID, constants.ProjectRoleMember)

	// 成员但系统等级不足
	_, err := svc.Create(sessionFor(memberUser), project.ID, &dto.SprintCreateRequest{Name: "Sprint 1"})
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	// manager等级但项目不可见
	_, err = svc.Create(sessionFor(outsider), project.ID, &dto.SprintCreateRequest{Name: "Sprint 1"})
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	resp, err := svc.Create(sessionFor(owner), project.ID, &dto.SprintCreateRequest{Name: "Sprint 1"})
	require.NoError(t, err)
	assert.Equal(t, constants.SprintStatusPlanned, resp.Status)
}

func TestSprintCreateDateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newSprintService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleManager)
	project := createTestProject(t, db, "SPR-1", &owner.ID, nil)

	start := "2026-09-10"
	end := "2026-09-01"
	_, err := svc.Create(sessionFor(owner), project.ID, &dto.SprintCreateRequest{
		Name:      "Sprint 1",
		StartDate: &start,
		EndDate:   &end,
	})
	assert.Error(t, err)

	badDate := "09/10/2026"
	_, err = svc.Create(sessionFor(owner), project.ID, &dto.SprintCreateRequest{
		Name:      "Sprint 1",
		StartDate: &badDate,
	})
	assert.Error(t, err)
}

func TestSprintUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newSprintService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleManager)
	memberUser := createTestUser(t, db, "member@example.com", auth.RoleMember)
	project := createTestProject(t, db, "SPR-1", &owner.ID, nil)
	addTestMember(t, db, project.ID, memberUser.ID, constants.ProjectRoleMember)

	sprint, err := svc.Create(sessionFor(owner), project.ID, &dto.SprintCreateRequest{Name: "Sprint 1"})
	require.NoError(t, err)

	// 成员可以看列表但不能改状态
	_, err = svc.UpdateStatus(sessionFor(memberUser), sprint.ID, &dto.SprintUpdateStatusRequest{Status: constants.SprintStatusActive})
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	updated, err := svc.UpdateStatus(sessionFor(owner), sprint.ID, &dto.SprintUpdateStatusRequest{Status: constants.SprintStatusActive})
	require.NoError(t, err)
	assert.Equal(t, constants.SprintStatusActive, updated.Status)

	// 不存在的迭代: 先404
	_, err = svc.UpdateStatus(sessionFor(owner), 99999, &dto.SprintUpdateStatusRequest{Status: constants.SprintStatusActive})
	assert.Equal(t, pkgErrors.ErrRecordNotFound, err)

	items, err := svc.ListByProject(sessionFor(memberUser), project.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
}
