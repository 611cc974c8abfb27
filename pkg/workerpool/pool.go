// Package workerpool provides a bounded goroutine pool for event fan-out.
// Package workerpool 提供用于事件推送的有界协程池
// The broadcast hub submits pushes here so a slow client never blocks a mutation.
// 广播中心将推送提交到此处,慢客户端不会阻塞业务操作
package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	// ErrPoolFull 任务队列已满
	ErrPoolFull = errors.New("worker pool queue is full")
	// ErrPoolClosed 协程池已关闭
	ErrPoolClosed = errors.New("worker pool is closed")
)

// Config 协程池配置
type Config struct {
	// Workers 并发 worker 数量,默认 8
	Workers int
	// QueueSize 任务队列大小,默认 256
	QueueSize int
}

// Metrics snapshot of the pool state, surfaced by the health endpoint.
// Metrics 协程池状态快照,由健康检查接口暴露
type Metrics struct {
	Submitted int64 `json:"submitted"` // 累计提交
	Completed int64 `json:"completed"` // 累计完成
	Dropped   int64 `json:"dropped"`   // 队列满被丢弃
	Failed    int64 `json:"failed"`    // 执行返回错误
	Queued    int   `json:"queued"`    // 当前排队
	Active    int64 `json:"active"`    // 当前执行中
}

// Pool 有界任务池
type Pool struct {
	logger *zap.Logger
	taskCh chan func(context.Context) error

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	submitted atomic.Int64
	completed atomic.Int64
	dropped   atomic.Int64
	failed    atomic.Int64
	active    atomic.Int64
}

// New 创建并启动协程池
func New(cfg *Config, logger *zap.Logger) *Pool {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		logger: logger,
		taskCh: make(chan func(context.Context) error, cfg.QueueSize),
	}

	for i := 0; i < cfg.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	logger.Info("worker pool started",
		zap.Int("workers", cfg.Workers),
		zap.Int("queueSize", cfg.QueueSize))

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for fn := range p.taskCh {
		p.runTask(fn)
	}
}

// runTask 执行任务并吸收 panic
func (p *Pool) runTask(fn func(context.Context) error) {
	p.active.Add(1)
	defer func() {
		p.active.Add(-1)
		p.completed.Add(1)
		if r := recover(); r != nil {
			p.logger.Error("worker pool task panic", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	if err := fn(context.Background()); err != nil {
		p.failed.Add(1)
		p.logger.Warn("worker pool task failed", zap.Error(err))
	}
}

// SubmitAsync submits without waiting for the result; returns ErrPoolFull when the queue is saturated.
// SubmitAsync 异步提交任务,不等待结果;队列饱和时返回 ErrPoolFull
func (p *Pool) SubmitAsync(ctx context.Context, fn func(context.Context) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.dropped.Add(1)
		return ErrPoolClosed
	}

	select {
	case p.taskCh <- fn:
		p.submitted.Add(1)
		return nil
	default:
		p.dropped.Add(1)
		return ErrPoolFull
	}
}

// GetMetrics 获取状态快照
func (p *Pool) GetMetrics() Metrics {
	return Metrics{
		Submitted: p.submitted.Load(),
		Completed: p.completed.Load(),
		Dropped:   p.dropped.Load(),
		Failed:    p.failed.Load(),
		Queued:    len(p.taskCh),
		Active:    p.active.Load(),
	}
}

// Shutdown stops intake, drains queued tasks and waits for workers, bounded by ctx.
// Shutdown 停止接收新任务,排空队列并等待 worker 退出,受 ctx 超时约束
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.taskCh)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
