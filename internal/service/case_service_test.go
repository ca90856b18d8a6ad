package service

import (
	"strings"
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

func newCaseService(db *gorm.DB) CaseService {
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	return NewCaseService(
		db,
		repository.NewCaseRepository(db),
		repository.NewAccountRepository(db),
		projectRepo,
		memberRepo,
		NewAuthorizationService(projectRepo, memberRepo),
	)
}

func createTestCase(t *testing.T, db *gorm.DB, title string, accountID, ownerID *int64) *model.Case {
	t.Helper()
	c := &model.Case{
		Title:     title,
		Stage:     constants.CaseStageNegotiation,
		AccountID: accountID,
		OwnerID:   ownerID,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestConvertCreatesProjectAndSeedsMembers(t *testing.T) {
	db := setupTestDB(t)
	svc := newCaseService(db)

	actor := createTestUser(t, db, "actor@example.com", auth.RoleManager)
	caseOwner := createTestUser(t, db, "caseowner@example.com", auth.RoleMember)

	account := &model.Account{Name: "Acme Corporation", OwnerID: &actor.ID}
	require.NoError(t, db.Create(account).Error)

	// 操作人通过客户桥接获得访问: 客户名下已有一个操作人参与的项目
	existing := createTestProject(t, db, "EXIST-1", &actor.ID, &account.ID)
	addTestMember(t, db, existing.ID, actor.ID, constants.ProjectRoleManager)

	c := createTestCase(t, db, "平台改造", &account.ID, &caseOwner.ID)

	resp, err := svc.Convert(sessionFor(actor), c.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.Project)

	// 商机置为WON并链接项目
	var updated model.Case
	require.NoError(t, db.First(&updated, c.ID).Error)
	assert.Equal(t, constants.CaseStageWon, updated.Stage)
	require.NotNil(t, updated.ProjectID)
	assert.Equal(t, resp.Project.ID, *updated.ProjectID)

	// 项目字段从商机复制
	var project model.Project
	require.NoError(t, db.First(&project, resp.Project.ID).Error)
	assert.Equal(t, "平台改造", project.Name)
	require.NotNil(t, project.AccountID)
	assert.Equal(t, account.ID, *project.AccountID)
	require.NotNil(t, project.OwnerID)
	assert.Equal(t, actor.ID, *project.OwnerID)
	assert.NotNil(t, project.StartDate)

	// Key 以客户名slug开头
	assert.True(t, strings.HasPrefix(project.Key, "ACMECORPORAT-"), "unexpected key %q", project.Key)

	// 成员: 操作人manager + 原负责人member
	var members []model.ProjectMember
	require.NoError(t, db.Where("project_id = ?", project.ID).Order("id").Find(&members).Error)
	require.Len(t, members, 2)
	assert.Equal(t, actor.ID, members[0].UserID)
	assert.Equal(t, constants.ProjectRoleManager, members[0].Role)
	assert.Equal(t, caseOwner.ID, members[1].UserID)
	assert.Equal(t, constants.ProjectRoleMember, members[1].Role)
}

func TestConvertActorIsCaseOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := newCaseService(db)

	actor := createTestUser(t, db, "actor@example.com", auth.RoleMember)

	// 操作人同时是商机负责人, 访问仍须经客户桥接
	account := &model.Account{Name: "智子科技", OwnerID: &actor.ID}
	require.NoError(t, db.Create(account).Error)
	existing := createTestProject(t, db, "BRG-1", &actor.ID, &account.ID)
	addTestMember(t, db, existing.ID, actor.ID, constants.ProjectRoleMember)

	c := createTestCase(t, db, "自营商机", &account.ID, &actor.ID)

	resp, err := svc.Convert(sessionFor(actor), c.ID)
	require.NoError(t, err)

	// 负责人即操作人时只有一条manager成员记录
	var members []model.ProjectMember
	require.NoError(t, db.Where("project_id = ?", resp.Project.ID).Find(&members).Error)
	require.Len(t, members, 1)
	assert.Equal(t, actor.ID, members[0].UserID)
	assert.Equal(t, constants.ProjectRoleManager, members[0].Role)

	// 客户名无ASCII字母数字时Key退回PROJ前缀
	var project model.Project
	require.NoError(t, db.First(&project, resp.Project.ID).Error)
	assert.True(t, strings.HasPrefix(project.Key, "PROJ-"))
}

func TestConvertTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := newCaseService(db)

	actor := createTestUser(t, db, "actor@example.com", auth.RoleMember)

	account := &model.Account{Name: "Acme", OwnerID: &actor.ID}
	require.NoError(t, db.Create(account).Error)
	existing := createTestProject(t, db, "BRG-1", &actor.ID, &account.ID)
	addTestMember(t, db, existing.ID, actor.ID, constants.ProjectRoleMember)

	c := createTestCase(t, db, "Deal", &account.ID, &actor.ID)

	_, err := svc.Convert(sessionFor(actor), c.ID)
	require.NoError(t, err)

	_, err = svc.Convert(sessionFor(actor), c.ID)
	assert.Equal(t, pkgErrors.ErrCaseAlreadyConverted, err)

	// 二次转换未产生多余的项目(桥接项目 + 转换产生的项目)
	var projectCount int64
	require.NoError(t, db.Model(&model.Project{}).Count(&projectCount).Error)
	assert.Equal(t, int64(2), projectCount)
}

func TestConvertGuardedUpdateRollsBack(t *testing.T) {
	db := setupTestDB(t)
	svc := newCaseService(db)

	actor := createTestUser(t, db, "actor@example.com", auth.RoleMember)
	c := createTestCase(t, db, "Deal", nil, &actor.ID)

	// 模拟并发: 服务读取后另一事务已完成转换
	rival := createTestProject(t, db, "RIVAL-1", &actor.ID, nil)
	require.NoError(t, db.Model(&model.Case{}).Where("id = ?", c.ID).
		Updates(map[string]interface{}{"stage": constants.CaseStageWon, "project_id": rival.ID}).Error)

	_, err := svc.Convert(sessionFor(actor), c.ID)
	assert.Equal(t, pkgErrors.ErrCaseAlreadyConverted, err)

	// 守卫更新未覆盖先到者的链接
	var updated model.Case
	require.NoError(t, db.First(&updated, c.ID).Error)
	require.NotNil(t, updated.ProjectID)
	assert.Equal(t, rival.ID, *updated.ProjectID)
}

func TestConvertAccessControl(t *testing.T) {
	db := setupTestDB(t)
	svc := newCaseService(db)

	owner := createTestUser(t, db, "owner@example.com", auth.RoleMember)
	stranger := createTestUser(t, db, "stranger@example.com", auth.RoleMember)
	c := createTestCase(t, db, "Deal", nil, &owner.ID)

	_, err := svc.Convert(nil, c.ID)
	assert.Equal(t, pkgErrors.ErrUnauthorized, err)

	_, err = svc.Convert(sessionFor(stranger), c.ID)
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	// 负责人身份不构成转换授权: 无客户亦无链接项目的商机谁也转不了
	_, err = svc.Convert(sessionFor(owner), c.ID)
	assert.Equal(t, pkgErrors.ErrForbidden, err)

	_, err = svc.Convert(sessionFor(owner), 99999)
	assert.Equal(t, pkgErrors.ErrRecordNotFound, err)
}

func TestCaseListVisibilityScope(t *testing.T) {
	db := setupTestDB(t)
	svc := newCaseService(db)

	manager := createTestUser(t, db, "manager@example.com", auth.RoleManager)
	caseOwner := createTestUser(t, db, "caseowner@example.com", auth.RoleMember)
	bridged := createTestUser(t, db, "bridged@example.com", auth.RoleMember)
	projMember := createTestUser(t, db, "projmember@example.com", auth.RoleMember)

	account := &model.Account{Name: "Acme", OwnerID: &manager.ID}
	require.NoError(t, db.Create(account).Error)

	// 客户名下的项目: bridged 是成员
	accountProject := createTestProject(t, db, "ACM-1", &manager.ID, &account.ID)
	addTestMember(t, db, accountProject.ID, bridged.ID, constants.ProjectRoleMember)
	// 无客户的项目: projMember 是成员
	plainProject := createTestProject(t, db, "PLN-1", &manager.ID, nil)
	addTestMember(t, db, plainProject.ID, projMember.ID, constants.ProjectRoleMember)

	createTestCase(t, db, "未转换客户商机", &account.ID, &caseOwner.ID)
	createTestCase(t, db, "私人商机", nil, &caseOwner.ID)
	// 已转换商机: 无客户, 链接到 plainProject
	converted := createTestCase(t, db, "已转换商机", nil, &caseOwner.ID)
	require.NoError(t, db.Model(&model.Case{}).Where("id = ?", converted.ID).
		Update("project_id", plainProject.ID).Error)
	// 已转换商机: 挂在客户名下, 但链接项目是 plainProject
	convertedOnAccount := createTestCase(t, db, "已转换客户商机", &account.ID, &caseOwner.ID)
	require.NoError(t, db.Model(&model.Case{}).Where("id = ?", convertedOnAccount.ID).
		Update("project_id", plainProject.ID).Error)

	// 桥接用户只看到客户名下未转换的商机; 已转换商机不再走客户桥接
	items, total, err := svc.List(sessionFor(bridged), &dto.CaseListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "未转换客户商机", items[0].Title)

	// 链接项目的成员看到已转换商机, 即使商机没有客户
	items, total, err = svc.List(sessionFor(projMember), &dto.CaseListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
	}
	assert.ElementsMatch(t, []string{"已转换商机", "已转换客户商机"}, titles)

	// 商机负责人身份不构成可见性
	_, total, err = svc.List(sessionFor(caseOwner), &dto.CaseListQuery{})
	require.NoError(t, err)
	assert.Zero(t, total)

	// 项目归属给可见性(已转换商机), 但客户桥接只认成员关系
	_, total, err = svc.List(sessionFor(manager), &dto.CaseListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestGenerateProjectKey(t *testing.T) {
	// 正常生成: slug截断到12位大写字母数字
	key, err := generateProjectKey("Acme Corporation 2024", func(string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "ACMECORPORAT-"), "unexpected key %q", key)
	assert.Len(t, key, len("ACMECORPORAT")+1+4)

	// 碰撞重试后命中
	attempts := 0
	key, err = generateProjectKey("Acme", func(string) (bool, error) {
		attempts++
		return attempts < 3, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.True(t, strings.HasPrefix(key, "ACME-"))

	// 5次全部碰撞后退回UUID
	attempts = 0
	key, err = generateProjectKey("Acme", func(string) (bool, error) {
		attempts++
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, attempts)
	assert.True(t, strings.HasPrefix(key, "PROJ-"))
	assert.Len(t, key, len("PROJ-")+8)

	// 空基准名
	key, err = generateProjectKey("", func(string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "PROJ-"))
}
