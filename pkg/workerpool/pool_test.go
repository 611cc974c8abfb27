package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_SubmitAndDrain(t *testing.T) {
	p := New(&Config{Workers: 4, QueueSize: 16}, nil)

	var ran atomic.Int64
	for i := 0; i < 10; i++ {
		err := p.SubmitAsync(context.Background(), func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
		require.NoError(t, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))

	// Shutdown 排空队列,全部任务都已执行
	assert.Equal(t, int64(10), ran.Load())

	m := p.GetMetrics()
	assert.Equal(t, int64(10), m.Submitted)
	assert.Equal(t, int64(10), m.Completed)
	assert.Equal(t, int64(0), m.Dropped)
}

func TestPool_QueueFull(t *testing.T) {
	p := New(&Config{Workers: 1, QueueSize: 1}, nil)

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		close(started)
		<-block
		return nil
	}))
	<-started

	// 队列容量 1:第一个占位成功,第二个被拒绝
	require.NoError(t, p.SubmitAsync(context.Background(), func(ctx context.Context) error { return nil }))

	err := p.SubmitAsync(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrPoolFull)
	assert.Equal(t, int64(1), p.GetMetrics().Dropped)

	close(block)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	p := New(nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
	// 重复关闭为空操作
	require.NoError(t, p.Shutdown(ctx))

	err := p.SubmitAsync(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrPoolClosed)
	// 关闭后的提交也计入丢弃
	assert.Equal(t, int64(1), p.GetMetrics().Dropped)
}

func TestPool_TaskErrorCounted(t *testing.T) {
	p := New(&Config{Workers: 1, QueueSize: 4}, nil)

	require.NoError(t, p.SubmitAsync(context.Background(), func(ctx context.Context) error {
		return errors.New("boom")
	}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))

	m := p.GetMetrics()
	assert.Equal(t, int64(1), m.Failed)
	assert.Equal(t, int64(1), m.Completed)
}
