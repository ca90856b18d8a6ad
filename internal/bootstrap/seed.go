package bootstrap

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/config"
	"crm-service/internal/pkg/crypto"
	"crm-service/internal/pkg/logger"
	"crm-service/pkg/constants"
)

// Seed 初始化数据
// admin账号幂等创建; demo数据仅在开关打开且库中尚无客户时写入
func Seed(db *gorm.DB) error {
	cfg := config.GlobalConfig.Seed
	if !cfg.Enabled {
		return nil
	}

	admin, err := ensureUser(db, cfg.AdminEmail, "Admin", cfg.AdminPassword, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if !cfg.DemoData {
		return nil
	}

	var accountCount int64
	if err := db.Model(&model.Account{}).Count(&accountCount).Error; err != nil {
		return err
	}
	if accountCount > 0 {
		return nil
	}

	return seedDemoData(db, admin)
}

func ensureUser(db *gorm.DB, email, name, password string, role auth.Role) (*model.User, error) {
	var user model.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash := ""
	if password != "" {
		hash, err = crypto.HashPassword(password)
		if err != nil {
			return nil, err
		}
	}

	user = model.User{
		Email:        email,
		Name:         &name,
		PasswordHash: hash,
		Role:         string(role),
		IsActive:     true,
		AuthProvider: constants.AuthTypeLocal,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	logger.Info("初始化用户", zap.String("email", email), zap.String("role", string(role)))
	return &user, nil
}

func seedDemoData(db *gorm.DB, admin *model.User) error {
	manager, err := ensureUser(db, "manager@example.com", "Morgan Manager", "manager123!", auth.RoleManager)
	if err != nil {
		return err
	}
	member, err := ensureUser(db, "member@example.com", "Mia Member", "member123!", auth.RoleMember)
	if err != nil {
		return err
	}
	if _, err := ensureUser(db, "viewer@example.com", "Vik Viewer", "viewer123!", auth.RoleViewer); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		industry := "软件服务"
		account := &model.Account{
			Name:     "Acme Corporation",
			Industry: &industry,
			OwnerID:  &manager.ID,
		}
		if err := tx.Create(account).Error; err != nil {
			return err
		}

		email := "jane.doe@acme.example.com"
		contact := &model.Contact{
			AccountID: &account.ID,
			OwnerID:   &manager.ID,
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     &email,
		}
		if err := tx.Create(contact).Error; err != nil {
			return err
		}

		caseDesc := "年度平台改造合作意向"
		demoCase := &model.Case{
			Title:       "Acme 平台改造",
			Description: &caseDesc,
			Stage:       constants.CaseStageQualified,
			AccountID:   &account.ID,
			ContactID:   &contact.ID,
			OwnerID:     &member.ID,
		}
		if err := tx.Create(demoCase).Error; err != nil {
			return err
		}

		today := datatypes.Date(time.Now())
		project := &model.Project{
			Key:       "ACME-DEMO",
			Name:      "Acme 交付项目",
			OwnerID:   &manager.ID,
			AccountID: &account.ID,
			StartDate: &today,
		}
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		members := []model.ProjectMember{
			{ProjectID: project.ID, UserID: manager.ID, Role: constants.ProjectRoleManager},
			{ProjectID: project.ID, UserID: member.ID, Role: constants.ProjectRoleMember},
			{ProjectID: project.ID, UserID: admin.ID, Role: constants.ProjectRoleMember},
		}
		if err := tx.Create(&members).Error; err != nil {
			return err
		}

		epic := &model.Epic{
			ProjectID: project.ID,
			Name:      "基础设施搭建",
		}
		if err := tx.Create(epic).Error; err != nil {
			return err
		}

		sprint := &model.Sprint{
			ProjectID: project.ID,
			Name:      "Sprint 1",
			Status:    constants.SprintStatusActive,
			StartDate: &today,
		}
		if err := tx.Create(sprint).Error; err != nil {
			return err
		}

		issues := []model.Issue{
			{
				ProjectID:  project.ID,
				EpicID:     &epic.ID,
				SprintID:   &sprint.ID,
				ReporterID: &manager.ID,
				Title:      "初始化CI流水线",
				Status:     constants.IssueStatusInProgress,
				Priority:   constants.IssuePriorityHigh,
				Type:       constants.IssueTypeTask,
			},
			{
				ProjectID:  project.ID,
				EpicID:     &epic.ID,
				ReporterID: &member.ID,
				Title:      "登录页偶发白屏",
				Status:     constants.IssueStatusToDo,
				Priority:   constants.IssuePriorityUrgent,
				Type:       constants.IssueTypeBug,
			},
		}
		if err := tx.Create(&issues).Error; err != nil {
			return err
		}

		assignee := &model.IssueAssignee{IssueID: issues[0].ID, UserID: member.ID}
		if err := tx.Create(assignee).Error; err != nil {
			return err
		}

		logger.Info("演示数据初始化完成", zap.Int64("account_id", account.ID), zap.Int64("project_id", project.ID))
		return nil
	})
}
