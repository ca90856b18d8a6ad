package service

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/config"
	"crm-service/internal/pkg/logger"
	"crm-service/pkg/constants"
)

func TestMain(m *testing.M) {
	config.GlobalConfig = &config.Config{}
	if err := logger.Init(&config.LogConfig{Level: "error", Format: "console", Output: "stdout"}); err != nil {
		fmt.Println("init logger:", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Contact{},
		&model.Case{},
		&model.Project{},
		&model.ProjectMember{},
		&model.Epic{},
		&model.Sprint{},
		&model.Issue{},
		&model.IssueAssignee{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role auth.Role) *model.User {
	t.Helper()
	name := email
	user := &model.User{
		Email:        email,
		Name:         &name,
		Role:         string(role),
		IsActive:     true,
		AuthProvider: constants.AuthTypeLocal,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, key string, ownerID *int64, accountID *int64) *model.Project {
	t.Helper()
	project := &model.Project{
		Key:       key,
		Name:      "项目 " + key,
		OwnerID:   ownerID,
		AccountID: accountID,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func addTestMember(t *testing.T, db *gorm.DB, projectID, userID int64, role string) *model.ProjectMember {
	t.Helper()
	member := &model.ProjectMember{ProjectID: projectID, UserID: userID, Role: role}
	require.NoError(t, db.Create(member).Error)
	return member
}

func sessionFor(user *model.User) *auth.Session {
	return &auth.Session{
		UserID: user.ID,
		Email:  user.Email,
		Role:   auth.Role(user.Role),
	}
}
