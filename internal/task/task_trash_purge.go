package task

import (
	"context"
	"time"

	"github.com/haierkeys/note-tag-service/internal/app"
	"github.com/haierkeys/note-tag-service/pkg/util"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func init() {
	Register(NewTrashPurgeTask)
}

// TrashPurgeTask 回收站保留期清理任务
// 将进入回收站超过保留时长的笔记彻底删除,并连带清除其标签关联
type TrashPurgeTask struct {
	app       *app.App
	retention time.Duration
	schedule  cron.Schedule
}

// NewTrashPurgeTask 创建回收站清理任务
// 保留时长未配置时返回 nil 任务,表示禁用清理
func NewTrashPurgeTask(a *app.App) (Task, error) {
	cfg := a.Config()

	retentionStr := cfg.App.TrashRetentionTime
	if retentionStr == "" {
		return nil, nil
	}
	retention, err := util.ParseDuration(retentionStr)
	if err != nil {
		return nil, err
	}

	schedule, err := cron.ParseStandard(cfg.App.TrashPurgeCron)
	if err != nil {
		return nil, err
	}

	return &TrashPurgeTask{
		app:       a,
		retention: retention,
		schedule:  schedule,
	}, nil
}

// Name 返回任务名称
func (t *TrashPurgeTask) Name() string {
	return "TrashPurge"
}

// LoopInterval 使用 cron 调度,不使用间隔循环
func (t *TrashPurgeTask) LoopInterval() time.Duration {
	return 0
}

// IsStartupRun 启动时先清理一次
func (t *TrashPurgeTask) IsStartupRun() bool {
	return true
}

// Schedule 返回 cron 调度计划
func (t *TrashPurgeTask) Schedule() cron.Schedule {
	return t.schedule
}

// Run 执行清理
func (t *TrashPurgeTask) Run(ctx context.Context) error {
	deadline := time.Now().Add(-t.retention).Unix()

	count, err := t.app.NoteService.PurgeTrashedBefore(ctx, deadline)
	if err != nil {
		t.app.Logger().Error("task log",
			zap.String("task", t.Name()),
			zap.String("msg", "failed"),
			zap.Error(err))
		return err
	}

	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.String("msg", "success"),
		zap.Int64("purged", count))
	return nil
}
