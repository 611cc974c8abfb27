// Package dao 实现数据访问层
package dao

import (
	"fmt"
	"os"
	"time"

	"github.com/haierkeys/note-tag-service/internal/model"
	"github.com/haierkeys/note-tag-service/pkg/fileurl"
	"github.com/haierkeys/note-tag-service/pkg/util"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

// Dao 数据访问对象
type Dao struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Option Dao 可选项
type Option func(*Dao)

// WithLogger 注入日志器
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = lg
	}
}

// New 创建 Dao 实例
func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB 返回底层 gorm 连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// AutoMigrate 迁移数据表
func (d *Dao) AutoMigrate(key string) error {
	return model.AutoMigrate(d.db, key)
}

// NewDBEngineWithConfig 初始化数据库连接（使用注入的配置）
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector, err := newDialector(c)
	if err != nil {
		return nil, err
	}

	gormLogLevel := logger.Silent
	if c.RunMode == "debug" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
		NamingStrategy: schema.NamingStrategy{
			// 表名前缀与单数表名，`Tag` 的表名为 `{prefix}tag`
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(parseDurationOr(c.ConnMaxLifetime, 30*time.Minute))
	sqlDB.SetConnMaxIdleTime(parseDurationOr(c.ConnMaxIdleTime, 10*time.Minute))

	if err := db.Use(&gormTracing.OpentracingPlugin{}); err != nil && lg != nil {
		lg.Warn("gorm tracing plugin register failed", zap.Error(err))
	}

	if c.AutoMigrate {
		if err := model.AutoMigrate(db, ""); err != nil {
			return nil, errors.Wrap(err, "auto migrate")
		}
	}

	return db, nil
}

// newDialector 根据配置选择数据库驱动
func newDialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "sqlite", "":
		if c.Path != ":memory:" && !fileurl.IsExist(c.Path) {
			if err := fileurl.CreatePath(c.Path, os.ModePerm); err != nil {
				return nil, err
			}
		}
		return sqlite.Open(c.Path), nil
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		)), nil
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		)), nil
	}
	return nil, errors.Errorf("unsupported database type %q", c.Type)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := util.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
