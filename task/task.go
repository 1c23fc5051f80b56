package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/clock"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/utils/config"
)

// Engine 仿真引擎
// 功能：持有一个路口仿真的全部状态，按步推进，并在两步之间应用操作员命令
// 说明：命令与步进由同一把锁串行化，命令总是落在两步之间，不会与一步交错
type Engine struct {
	id  uuid.UUID
	log *logrus.Entry

	mu    sync.Mutex
	clock *clock.Clock
	env   *Env
	state State

	subMu       sync.RWMutex
	subscribers []func(Snapshot)

	telemetry *Telemetry
}

// NewEngine 创建仿真引擎
// 功能：根据配置初始化时钟、模型与初始状态
// 参数：c-校验后的配置，now-本地时间来源（nil时使用time.Now）
// 返回：引擎实例，指标创建失败时返回错误
func NewEngine(c config.Config, now func() time.Time) (*Engine, error) {
	telemetry, err := NewTelemetry()
	if err != nil {
		return nil, fmt.Errorf("create telemetry: %w", err)
	}
	id := uuid.New()
	env := NewEnv(c, now)
	e := &Engine{
		id:        id,
		log:       log.WithField("engine", id.String()),
		clock:     clock.New(c.Control.Step),
		env:       env,
		state:     NewState(c, env.Coordinator),
		telemetry: telemetry,
	}
	e.log.Infof(
		"engine created: seed=%d cycle=%ds minGreen=%ds adaptive=%v weather=%s intersections=%d",
		env.Rand.Seed(), e.state.Settings.CycleTime, e.state.Settings.MinGreenTime,
		e.state.Settings.AdaptiveMode, e.state.Weather, len(e.state.Intersections),
	)
	return e, nil
}

// ID 引擎实例ID
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Clock 引擎时钟
func (e *Engine) Clock() *clock.Clock {
	return e.clock
}

// Subscribe 注册快照订阅者，每步结束与每条命令后调用
// 说明：订阅者在引擎锁之外调用，可以在回调中发送命令
func (e *Engine) Subscribe(fn func(Snapshot)) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	e.subscribers = append(e.subscribers, fn)
}

func (e *Engine) publish(s Snapshot) {
	e.subMu.RLock()
	subscribers := e.subscribers
	e.subMu.RUnlock()
	for _, fn := range subscribers {
		fn(s)
	}
}

// Snapshot 当前状态的快照
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot()
}

// Apply 在两步之间应用一条命令
// 参数：cmd-命令
// 返回：应用后的快照；命令参数非法时状态不变并返回错误
func (e *Engine) Apply(cmd Command) (Snapshot, error) {
	e.mu.Lock()
	next, err := cmd.apply(e.state, e.env)
	name := fmt.Sprintf("%T", cmd)
	if err != nil {
		e.log.Warnf("command %s rejected: %v", name, err)
	} else {
		e.state = next
		if _, ok := cmd.(Reset); ok {
			e.clock.Init()
		}
		e.log.Debugf("command %s applied at step %d", name, e.state.Elapsed)
	}
	snapshot := e.state.Snapshot()
	e.mu.Unlock()

	e.telemetry.recordCommand(context.Background(), name, err)
	e.publish(snapshot)
	return snapshot, err
}

// Start 开始运行
func (e *Engine) Start() {
	e.Apply(Start{})
}

// Pause 暂停，不改变状态
func (e *Engine) Pause() {
	e.Apply(Pause{})
}

// Reset 复位
func (e *Engine) Reset() {
	e.Apply(Reset{})
}

// SetAdaptiveMode 切换自适应配时
func (e *Engine) SetAdaptiveMode(enabled bool) {
	e.Apply(SetAdaptiveMode{Enabled: enabled})
}

// SetCycleTime 设置周期时长（截断到[30,120]）
func (e *Engine) SetCycleTime(seconds int32) {
	e.Apply(SetCycleTime{Seconds: seconds})
}

// SetMinGreenTime 设置最小绿灯时长（截断到[5,30]）
func (e *Engine) SetMinGreenTime(seconds int32) {
	e.Apply(SetMinGreenTime{Seconds: seconds})
}

// TriggerEmergency 紧急车辆选择，vehicle为VehicleNone时取消
func (e *Engine) TriggerEmergency(vehicle entity.VehicleType, direction entity.Direction) error {
	_, err := e.Apply(TriggerEmergency{Vehicle: vehicle, Direction: direction})
	return err
}

// RequestPedestrianCrossing 翻转行人过街请求
func (e *Engine) RequestPedestrianCrossing(direction entity.Direction) error {
	_, err := e.Apply(RequestPedestrianCrossing{Direction: direction})
	return err
}

// SetWeather 设置天气
func (e *Engine) SetWeather(weather entity.Weather) error {
	_, err := e.Apply(SetWeather{Weather: weather})
	return err
}

// SetGreenWaveEnabled 切换绿波协调
func (e *Engine) SetGreenWaveEnabled(enabled bool) {
	e.Apply(SetGreenWaveEnabled{Enabled: enabled})
}

// Step 立即推进一步，不检查运行状态
// 返回：新状态的快照
func (e *Engine) Step() Snapshot {
	e.mu.Lock()
	snapshot := e.step()
	e.mu.Unlock()

	e.publish(snapshot)
	return snapshot
}

// step 推进一步，调用方持有锁
func (e *Engine) step() Snapshot {
	prev := e.state
	e.state = Step(prev, e.env)
	e.clock.Advance()

	if e.clock.InternalStep%int32(max(*heartBeatInterval, 1)) == 0 {
		hour, minute, second := e.clock.GetHourMinuteSecond()
		e.log.Infof(
			"STEP: %d(%d:%d:%.2f) queued=%d processed=%d status=%s",
			e.clock.InternalStep,
			hour, minute, second,
			e.state.Queue.Total(), e.state.Metrics.TotalVehiclesProcessed,
			e.state.Snapshot().Status,
		)
	}
	if !prev.Emergency.Active() && e.state.Emergency.Active() {
		e.log.Infof("step %d: emergency override toward %s", e.state.Elapsed, e.state.Emergency.Direction)
	}
	if !prev.Pedestrian.Active && e.state.Pedestrian.Active {
		e.log.Infof("step %d: pedestrian phase scheduled", e.state.Elapsed)
	}

	snapshot := e.state.Snapshot()
	e.telemetry.recordStep(context.Background(), snapshot, e.state.Departed.Total())
	return snapshot
}

// tick 处理一个时钟信号：运行中则推进一步
// 返回：是否推进，以及推进后的快照
func (e *Engine) tick() (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.Running {
		return Snapshot{}, false
	}
	return e.step(), true
}

// Run 驱动循环
// 功能：每收到一个时钟信号执行一次完整的仿真步，暂停时信号被忽略
// 参数：ctx-取消时退出，ticker-时钟信号源，退出时停止
// 返回：ctx取消时返回ctx.Err()；信号源关闭或到达结束步时返回nil
func (e *Engine) Run(ctx context.Context, ticker clock.Ticker) error {
	defer ticker.Stop()
	e.log.Infof("engine running from step %d", e.clock.InternalStep)
	for {
		select {
		case <-ctx.Done():
			e.log.Infof("engine stopped at step %d: %v", e.clock.InternalStep, ctx.Err())
			return ctx.Err()
		case _, ok := <-ticker.C():
			if !ok {
				e.log.Infof("engine complete at step %d", e.clock.InternalStep)
				return nil
			}
			if snapshot, stepped := e.tick(); stepped {
				e.publish(snapshot)
			}
			if e.done() {
				e.log.Infof("engine complete at step %d", e.clock.InternalStep)
				return nil
			}
		}
	}
}

func (e *Engine) done() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Done()
}
