package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "crm-service/docs"
	"crm-service/internal/api/handler"
	"crm-service/internal/api/middleware"
	"crm-service/internal/pkg/config"
	"crm-service/internal/repository"
	"crm-service/internal/service"
)

// Setup 装配路由
func Setup(db *gorm.DB) *gin.Engine {
	if config.GlobalConfig.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Logger(), middleware.Recovery(), middleware.CORS())

	// repository
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	contactRepo := repository.NewContactRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	epicRepo := repository.NewEpicRepository(db)
	sprintRepo := repository.NewSprintRepository(db)
	issueRepo := repository.NewIssueRepository(db)

	// service
	authzSvc := service.NewAuthorizationService(projectRepo, memberRepo)
	ldapSvc := service.NewLDAPService()
	authSvc := service.NewAuthService(userRepo, ldapSvc)
	userSvc := service.NewUserService(userRepo)
	accountSvc := service.NewAccountService(accountRepo, userRepo)
	contactSvc := service.NewContactService(contactRepo, accountRepo)
	caseSvc := service.NewCaseService(db, caseRepo, accountRepo, projectRepo, memberRepo, authzSvc)
	projectSvc := service.NewProjectService(db, projectRepo, memberRepo, accountRepo, issueRepo, authzSvc)
	memberSvc := service.NewProjectMemberService(memberRepo, userRepo, authzSvc)
	epicSvc := service.NewEpicService(epicRepo, issueRepo, authzSvc)
	sprintSvc := service.NewSprintService(sprintRepo, issueRepo, authzSvc)
	issueSvc := service.NewIssueService(issueRepo, epicRepo, sprintRepo, authzSvc)

	// handler
	healthHandler := handler.NewHealthHandler(db)
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	accountHandler := handler.NewAccountHandler(accountSvc)
	contactHandler := handler.NewContactHandler(contactSvc)
	caseHandler := handler.NewCaseHandler(caseSvc)
	projectHandler := handler.NewProjectHandler(projectSvc)
	memberHandler := handler.NewProjectMemberHandler(memberSvc)
	epicHandler := handler.NewEpicHandler(epicSvc)
	sprintHandler := handler.NewSprintHandler(sprintSvc)
	issueHandler := handler.NewIssueHandler(issueSvc)

	r.GET("/health", healthHandler.Check)
	r.GET("/health/db", healthHandler.CheckDB)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.RefreshToken)
			authGroup.GET("/me", middleware.JWTAuth(), authHandler.GetCurrentUser)
		}

		authed := v1.Group("")
		authed.Use(middleware.JWTAuth())
		{
			// 用户管理(admin/manager)
			adminUsers := authed.Group("/admin/users")
			{
				adminUsers.POST("", userHandler.Create)
				adminUsers.GET("", userHandler.List)
				adminUsers.DELETE("", userHandler.Delete)
				adminUsers.PUT("/:id/role", userHandler.UpdateRole)
				adminUsers.PUT("/:id/active", userHandler.UpdateActive)
			}

			// 个人
			users := authed.Group("/users")
			{
				users.PUT("/profile", userHandler.UpdateProfile)
				users.PUT("/password", userHandler.UpdatePassword)
			}

			// 客户
			accounts := authed.Group("/accounts")
			{
				accounts.POST("", accountHandler.Create)
				accounts.GET("", accountHandler.List)
				accounts.GET("/:id", accountHandler.Get)
				accounts.PUT("/:id", accountHandler.Update)
				accounts.DELETE("/:id", accountHandler.Delete)
			}

			// 联系人
			contacts := authed.Group("/contacts")
			{
				contacts.POST("", contactHandler.Create)
				contacts.GET("", contactHandler.List)
				contacts.GET("/:id", contactHandler.Get)
				contacts.PUT("/:id", contactHandler.Update)
				contacts.DELETE("/:id", contactHandler.Delete)
			}

			// 商机
			cases := authed.Group("/cases")
			{
				cases.POST("", caseHandler.Create)
				cases.GET("", caseHandler.List)
				cases.GET("/:id", caseHandler.Get)
				cases.PUT("/:id", caseHandler.Update)
				cases.DELETE("/:id", caseHandler.Delete)
				cases.POST("/:id/convert", caseHandler.Convert)
			}

			// 项目及子资源
			projects := authed.Group("/projects")
			{
				projects.GET("", projectHandler.List)
				projects.POST("", projectHandler.Create)
				projects.GET("/:id", projectHandler.Get)
				projects.PUT("/:id", projectHandler.Update)
				projects.DELETE("/:id", projectHandler.Delete)

				projects.GET("/:id/members", memberHandler.List)
				projects.POST("/:id/members", memberHandler.Add)

				projects.GET("/:id/epics", epicHandler.List)
				projects.POST("/:id/epics", epicHandler.Create)

				projects.GET("/:id/sprints", sprintHandler.List)
				projects.POST("/:id/sprints", sprintHandler.Create)

				projects.GET("/:id/issues", issueHandler.List)
				projects.POST("/:id/issues", issueHandler.Create)
			}

			members := authed.Group("/project-members")
			{
				members.PUT("/:id/role", memberHandler.UpdateRole)
				members.DELETE("/:id", memberHandler.Remove)
			}

			epics := authed.Group("/epics")
			{
				epics.PUT("/:id", epicHandler.Update)
				epics.DELETE("/:id", epicHandler.Delete)
			}

			sprints := authed.Group("/sprints")
			{
				sprints.PUT("/:id/status", sprintHandler.UpdateStatus)
			}

			issues := authed.Group("/issues")
			{
				issues.PUT("/:id/status", issueHandler.UpdateStatus)
			}
		}
	}

	return r
}
