package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/haierkeys/note-tag-service/internal/dao"
	"github.com/haierkeys/note-tag-service/internal/domain"
	"github.com/haierkeys/note-tag-service/internal/service"
	pkgapp "github.com/haierkeys/note-tag-service/pkg/app"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// Repository 层
	TagRepo  domain.TagRepository
	NoteRepo domain.NoteRepository

	// Service 层
	TagService  service.TagService
	NoteService service.NoteService

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		shutdownCh: make(chan struct{}),
	}

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db, dao.WithLogger(logger))

	// Repository 层
	a.TagRepo = dao.NewTagRepository(a.Dao)
	a.NoteRepo = dao.NewNoteRepository(a.Dao)

	// Service 层
	a.TagService = service.NewTagService(a.TagRepo, a.NoteRepo)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.TagRepo)

	// 同步翻页默认值
	pkgapp.DefaultPageSize = cfg.App.DefaultPageSize
	pkgapp.MaxPageSize = cfg.App.MaxPageSize

	return a, nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// SetEventPublisher 为所有服务注入事件发布器
func (a *App) SetEventPublisher(pub service.EventPublisher) {
	a.TagService.SetEventPublisher(pub)
	a.NoteService.SetEventPublisher(pub)
}

// Shutdown 优雅关闭应用容器
func (a *App) Shutdown(ctx context.Context) error {
	close(a.shutdownCh)

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				a.logger.Error("failed to close database", zap.Error(err))
				return err
			}
		}
	}

	return nil
}
