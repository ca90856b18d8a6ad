package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"crm-service/internal/api/router"
	"crm-service/internal/bootstrap"
	"crm-service/internal/model"
	"crm-service/internal/pkg/config"
	"crm-service/internal/pkg/database"
	"crm-service/internal/pkg/logger"
	"crm-service/internal/scheduler"
)

// @title CRM Service API
// @version 1.0
// @description 客户关系与项目跟踪服务
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer database.Close()
	db := database.GetDB()

	// 自动建表
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(
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
		); err != nil {
			logger.Fatal("自动建表失败", zap.Error(err))
		}
	}

	// 初始化数据
	if err := bootstrap.Seed(db); err != nil {
		logger.Fatal("初始化数据失败", zap.Error(err))
	}

	// 启动定时任务
	sched := scheduler.New(db)
	if err := sched.Start(); err != nil {
		logger.Fatal("启动定时任务失败", zap.Error(err))
	}
	defer sched.Stop()

	// 启动HTTP服务
	engine := router.Setup(db)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		logger.Info("服务启动", zap.String("name", cfg.Server.Name), zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("收到退出信号, 开始关闭服务")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务关闭异常", zap.Error(err))
	}
	logger.Info("服务已退出")
}
