// Package safe_close coordinates graceful shutdown of long running workers.
// Package safe_close 协调常驻协程的优雅退出
package safe_close

import (
	"sync"
)

// SafeClose broadcasts one close signal to every attached worker and waits for them.
type SafeClose struct {
	closeOnce   sync.Once
	closeSignal chan struct{}

	wg sync.WaitGroup

	mu  sync.Mutex
	err error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach starts fn in a goroutine. fn must call done when it has released its resources.
// Attach 启动 fn，fn 退出前必须调用 done
func (s *SafeClose) Attach(fn func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	go fn(func() { once.Do(s.wg.Done) }, s.closeSignal)
}

// SendCloseSignal 发送关闭信号，仅第一次调用生效；err 会在 WaitClosed 中返回
func (s *SafeClose) SendCloseSignal(err error) {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.closeSignal)
	})
}

// CloseSignal 关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until every attached worker called done.
// WaitClosed 等待所有协程退出
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
