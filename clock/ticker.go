package clock

import (
	"sync"
	"time"
)

// Ticker 步进信号源
// 功能：向引擎驱动循环发送"推进一步"的信号
// 说明：生产环境使用真实时间间隔，测试中使用ManualTicker确定性地推进仿真时间
type Ticker interface {
	C() <-chan time.Time // 信号通道，关闭表示信号源结束
	Stop()               // 停止发送信号
}

// wallTicker 基于真实时间的信号源
type wallTicker struct {
	t *time.Ticker
}

// NewWallTicker 创建真实时间信号源
// 参数：interval-每步的真实时间间隔（秒），非正数时按1秒处理
func NewWallTicker(interval float64) Ticker {
	d := time.Duration(interval * float64(time.Second))
	if d <= 0 {
		d = time.Second
	}
	return &wallTicker{t: time.NewTicker(d)}
}

func (w *wallTicker) C() <-chan time.Time {
	return w.t.C
}

func (w *wallTicker) Stop() {
	w.t.Stop()
}

// ManualTicker 手动信号源
// 功能：由调用方显式推进，使测试不依赖真实时间
type ManualTicker struct {
	ch   chan time.Time
	now  time.Time
	once sync.Once
}

// NewManualTicker 创建手动信号源
// 参数：start-第一个信号携带的时间
func NewManualTicker(start time.Time) *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time), now: start}
}

func (m *ManualTicker) C() <-chan time.Time {
	return m.ch
}

// Advance 发送n个信号，每个信号时间递增一秒
// 说明：通道无缓冲，每个信号都会阻塞直到被驱动循环接收
func (m *ManualTicker) Advance(n int) {
	for range n {
		m.ch <- m.now
		m.now = m.now.Add(time.Second)
	}
}

// Stop 关闭信号通道，驱动循环随之退出
func (m *ManualTicker) Stop() {
	m.once.Do(func() { close(m.ch) })
}
