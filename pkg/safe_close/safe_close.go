// Package safe_close 提供多组件协同的优雅关闭控制
package safe_close

import "sync"

// SafeClose 管理一组子任务的生命周期
// 任意子任务可以发送关闭信号，所有子任务随后收到通知并等待全部退出
type SafeClose struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	closed chan struct{}
	once   sync.Once
	err    error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closed: make(chan struct{}),
	}
}

// Attach 注册一个子任务
// f 必须在退出前调用 done()，并监听 closeSignal 以便及时退出
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var doneOnce sync.Once
	done := func() {
		doneOnce.Do(s.wg.Done)
	}
	go f(done, s.closed)
}

// SendCloseSignal 发送关闭信号，首个非 nil 错误会被记录
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	s.once.Do(func() {
		close(s.closed)
	})
}

// CloseSignal 返回关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closed
}

// WaitClosed 阻塞等待所有子任务退出，返回触发关闭的错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
