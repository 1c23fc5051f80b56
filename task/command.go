package task

import (
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
)

// Command 操作员命令
// 功能：在两步之间修改仿真状态，修改在下一步计算时生效
type Command interface {
	apply(s State, env *Env) (State, error)
}

// Start 开始运行
type Start struct{}

func (Start) apply(s State, _ *Env) (State, error) {
	s.Running = true
	return s, nil
}

// Pause 暂停运行，保留全部状态
type Pause struct{}

func (Pause) apply(s State, _ *Env) (State, error) {
	s.Running = false
	return s, nil
}

// Reset 复位仿真并重置随机序列
type Reset struct{}

func (Reset) apply(s State, env *Env) (State, error) {
	env.Rand.Reseed()
	return s.reset(env.Coordinator), nil
}

// SetAdaptiveMode 切换自适应配时
type SetAdaptiveMode struct {
	Enabled bool
}

func (c SetAdaptiveMode) apply(s State, _ *Env) (State, error) {
	s.Settings.AdaptiveMode = c.Enabled
	return s, nil
}

// SetCycleTime 设置周期时长，超出[30,120]时截断
type SetCycleTime struct {
	Seconds int32
}

func (c SetCycleTime) apply(s State, _ *Env) (State, error) {
	s.Settings.CycleTime = entity.ClampCycleTime(c.Seconds)
	if s.Settings.CycleTime != c.Seconds {
		log.Warnf("cycle time %ds clamped to %ds", c.Seconds, s.Settings.CycleTime)
	}
	return s, nil
}

// SetMinGreenTime 设置最小绿灯时长，超出[5,30]时截断
type SetMinGreenTime struct {
	Seconds int32
}

func (c SetMinGreenTime) apply(s State, _ *Env) (State, error) {
	s.Settings.MinGreenTime = entity.ClampMinGreenTime(c.Seconds)
	if s.Settings.MinGreenTime != c.Seconds {
		log.Warnf("min green time %ds clamped to %ds", c.Seconds, s.Settings.MinGreenTime)
	}
	return s, nil
}

// TriggerEmergency 紧急车辆选择
// 功能：Vehicle为空时取消；Direction为空时等待方向；两者都指定时开始抢占并取消进行中的行人相位
type TriggerEmergency struct {
	Vehicle   entity.VehicleType
	Direction entity.Direction
}

func (c TriggerEmergency) apply(s State, _ *Env) (State, error) {
	vehicle, err := entity.ParseVehicleType(string(c.Vehicle))
	if err != nil {
		return s, err
	}
	direction, err := entity.ParseDirection(string(c.Direction))
	if err != nil {
		return s, err
	}
	s.Emergency = s.Emergency.Trigger(vehicle, direction)
	if s.Emergency.Active() {
		s.Pedestrian = s.Pedestrian.Cancel()
	}
	return s, nil
}

// RequestPedestrianCrossing 翻转某方向的行人过街请求，紧急车辆介入期间忽略
type RequestPedestrianCrossing struct {
	Direction entity.Direction
}

func (c RequestPedestrianCrossing) apply(s State, _ *Env) (State, error) {
	if c.Direction == entity.DirectionNone {
		return s, fmt.Errorf("%w: pedestrian crossing needs a direction", entity.ErrUnknownDirection)
	}
	if _, err := entity.ParseDirection(string(c.Direction)); err != nil {
		return s, err
	}
	s.Pedestrian = s.Pedestrian.Toggle(c.Direction, s.Emergency.Engaged())
	return s, nil
}

// SetWeather 设置天气
type SetWeather struct {
	Weather entity.Weather
}

func (c SetWeather) apply(s State, _ *Env) (State, error) {
	w, err := entity.ParseWeather(string(c.Weather))
	if err != nil {
		return s, err
	}
	s.Weather = w
	return s, nil
}

// SetGreenWaveEnabled 切换绿波协调
type SetGreenWaveEnabled struct {
	Enabled bool
}

func (c SetGreenWaveEnabled) apply(s State, _ *Env) (State, error) {
	s.Settings.GreenWave = c.Enabled
	return s, nil
}
