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

func newIssueService(db *gorm.DB) IssueService {
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	return NewIssueService(
		repository.NewIssueRepository(db),
		repository.NewEpicRepository(db),
		repository.NewSprintRepository(db),
		NewAuthorizationService(projectRepo, memberRepo),
	)
}

func TestIssueCreateDefaultsAndAssignees(t *testing.T) {
	db := setupTestDB(t)
	svc := newIssueService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleMember)
	assignee := createTestUser(t, db, "assignee@example.com", auth.RoleMember)
	project := createTestProject(t, db, "ISS-1", &owner.ID, nil)

	resp, err := svc.Create(sessionFor(owner), project.ID, &dto.IssueCreateRequest{
		Title:       "初始化CI",
		AssigneeIDs: []int64{assignee.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, constants.IssueStatusToDo, resp.Status)
	assert.Equal(t, constants.IssuePriorityMedium, resp.Priority)
	assert.Equal(t, constants.IssueTypeTask, resp.Type)
	require.Len(t, resp.Assignees, 1)
	assert.Equal(t, assignee.ID, resp.Assignees[0].ID)
}

func TestIssueCreateRejectsForeignEpic(t *testing.T) {
	db := setupTestDB(t)
	svc := newIssueService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleMember)
	project := createTestProject(t, db, "ISS-1", &owner.ID, nil)
	otherProject := createTestProject(t, db, "ISS-2", &owner.ID, nil)

	epic := &model.Epic{ProjectID: otherProject.ID, Name: "别的项目的史诗"}
	require.NoError(t, db.Create(epic).Error)

	_, err := svc.Create(sessionFor(owner), project.ID, &dto.IssueCreateRequest{
		Title:  "x",
		EpicID: &epic.ID,
	})
	assert.Error(t, err)
}

func TestIssueCreateRejectsUnknownEnumValues(t *testing.T) {
	db := setupTestDB(t)
	svc := newIssueService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleMember)
	project := createTestProject(t, db, "ISS-1", &owner.ID, nil)

	badPriority := "ASAP"
	_, err := svc.Create(sessionFor(owner), project.ID, &dto.IssueCreateRequest{
		Title:    "x",
		Priority: &badPriority,
	})
	assert.Error(t, err)

	badType := "INCIDENT"
	_, err = svc.Create(sessionFor(owner), project.ID, &dto.IssueCreateRequest{
		Title: "x",
		Type:  &badType,
	})
	assert.Error(t, err)
}

func TestIssueUpdateStatusResolvesProjectFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newIssueService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleMember)
	outsider := createTestUser(t, db, "outsider@example.com", auth.RoleMember)
	project := createTestProject(t, db, "ISS-1", &owner.ID, nil)

	issue, err := svc.Create(sessionFor(owner), project.ID, &dto.IssueCreateRequest{Title: "x"})
	require.NoError(t, err)

	// 不存在的事项先404, 项目不可见则403
	_, err = svc.UpdateStatus(sessionFor(owner), 99999, &dto.IssueUpdateStatusRequest{Status: constants.IssueStatusDone})
	assert.Equal(t, pkgErrors.ErrRecordNotFound, err)

	_, err = svc.UpdateStatus(sessionFor(outsider), issue.ID, &dto.IssueUpdateStatusRequest{Status: constants.IssueStatusDone})
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	updated, err := svc.UpdateStatus(sessionFor(owner), issue.ID, &dto.IssueUpdateStatusRequest{Status: constants.IssueStatusInProgress})
	require.NoError(t, err)
	assert.Equal(t, constants.IssueStatusInProgress, updated.Status)
}

func TestIssueListFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := newIssueService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleMember)
	project := createTestProject(t, db, "ISS-1", &owner.ID, nil)

	bug := constants.IssueTypeBug
	_, err := svc.Create(sessionFor(owner), project.ID, &dto.IssueCreateRequest{Title: "白屏bug", Type: &bug})
	require.NoError(t, err)
	_, err = svc.Create(sessionFor(owner), project.ID, &dto.IssueCreateRequest{Title: "普通任务"})
	require.NoError(t, err)

	items, total, err := svc.ListByProject(sessionFor(owner), project.ID, &IssueListQuery{Type: &bug})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "白屏bug", items[0].Title)
}
