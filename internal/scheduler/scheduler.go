package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"crm-service/internal/model"
	"crm-service/internal/pkg/config"
	"crm-service/internal/pkg/logger"
)

// Scheduler 定时任务调度器
type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
}

func New(db *gorm.DB) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		db:   db,
	}
}

// Start 注册并启动定时任务
func (s *Scheduler) Start() error {
	cfg := config.GlobalConfig.Retention
	if cfg.Enabled {
		spec := cfg.Cron
		if spec == "" {
			spec = "0 3 * * *"
		}
		if _, err := s.cron.AddFunc(spec, s.purgeSoftDeleted); err != nil {
			return err
		}
		logger.Info("软删除清理任务已注册", zap.String("cron", spec), zap.Int("days", cfg.Days))
	}

	s.cron.Start()
	return nil
}

// Stop 停止调度器, 等待运行中的任务结束
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// purgeSoftDeleted 物理清理超过保留期的软删除记录
func (s *Scheduler) purgeSoftDeleted() {
	days := config.GlobalConfig.Retention.Days
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	tables := []interface{}{
		&model.Issue{},
		&model.Sprint{},
		&model.Epic{},
		&model.Project{},
		&model.Case{},
		&model.Contact{},
		&model.Account{},
		&model.User{},
	}

	for _, table := range tables {
		result := s.db.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
			Delete(table)
		if result.Error != nil {
			logger.Error("清理软删除记录失败", zap.Error(result.Error))
			continue
		}
		if result.RowsAffected > 0 {
			logger.Info("清理软删除记录", zap.Int64("rows", result.RowsAffected))
		}
	}
}
