package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"gopkg.in/yaml.v2"
)

// MaxHistoryCapacity 历史样本容量上限
const MaxHistoryCapacity = 50

var (
	ErrInvalidConfig = errors.New("invalid config")

	log = logrus.WithField("module", "config")
)

// Default 默认配置
// 功能：返回与原型系统一致的默认参数
// 说明：自适应模式开启、周期60秒、最小绿灯10秒、绿波开启，三个次级路口
func Default() Config {
	return Config{
		Control: Control{
			Step:         ControlStep{Start: 0, Total: 0, Interval: 1},
			AdaptiveMode: true,
			CycleTime:    60,
			MinGreenTime: 10,
			GreenWave:    true,
		},
		Arrival: Arrival{
			Seed:      0,
			RushHours: []RushWindow{{Start: 7, End: 9}, {Start: 17, End: 19}},
		},
		History: History{
			Capacity:       50,
			SampleInterval: 10,
			ChartCapacity:  20,
		},
		Weather:      entity.WeatherClear,
		InitialQueue: entity.VehicleQueue{North: 8, South: 6, East: 10, West: 7},
		Intersections: []Intersection{
			{ID: "A", Name: "Main & 1st", VehicleCount: 12, Phase: entity.BasePhase},
			{ID: "B", Name: "Main & 2nd", VehicleCount: 8, Phase: entity.PhasePair{NS: entity.LightGreen, EW: entity.LightRed}},
			{ID: "C", Name: "Main & 3rd", VehicleCount: 15, Phase: entity.BasePhase},
		},
	}
}

// Load 从YAML数据加载配置
// 功能：在默认配置的基础上严格解析YAML（未知字段报错），再进行校验
// 参数：data-YAML文件内容
// 返回：校验后的配置，解析失败或存在无法修正的字段时返回错误
func Load(data []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return c.Validate()
}

// Validate 校验并修正配置
// 功能：越界的信控参数截断到允许范围（交互式仿真不拒绝输入），结构性错误返回错误
// 返回：修正后的配置副本
func (c Config) Validate() (Config, error) {
	c.Intersections = slices.Clone(c.Intersections)
	if s := c.Settings(); s.CycleTime != c.Control.CycleTime || s.MinGreenTime != c.Control.MinGreenTime {
		log.Warnf("control settings clamped: cycle_time %d->%d min_green_time %d->%d",
			c.Control.CycleTime, s.CycleTime, c.Control.MinGreenTime, s.MinGreenTime)
		c.Control.CycleTime = s.CycleTime
		c.Control.MinGreenTime = s.MinGreenTime
	}
	if c.Control.Step.Interval <= 0 {
		return c, fmt.Errorf("%w: control.step.interval must be positive, got %v", ErrInvalidConfig, c.Control.Step.Interval)
	}
	if c.Control.Step.Total < 0 || c.Control.Step.Start < 0 {
		return c, fmt.Errorf("%w: control.step start/total must be non-negative", ErrInvalidConfig)
	}
	if _, err := entity.ParseWeather(string(c.Weather)); err != nil {
		return c, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, d := range entity.Directions {
		if c.InitialQueue.Get(d) < 0 {
			return c, fmt.Errorf("%w: initial_queue.%s must be non-negative", ErrInvalidConfig, d)
		}
	}
	for _, w := range c.Arrival.RushHours {
		if w.Start > w.End || w.Start < 0 || w.End > 24 {
			return c, fmt.Errorf("%w: invalid rush hour window [%v,%v]", ErrInvalidConfig, w.Start, w.End)
		}
	}
	if c.History.Capacity < 1 || c.History.SampleInterval < 1 || c.History.ChartCapacity < 1 {
		return c, fmt.Errorf("%w: history capacity, sample_interval and chart_capacity must be positive", ErrInvalidConfig)
	}
	if c.History.Capacity > MaxHistoryCapacity {
		log.Warnf("history capacity clamped: %d->%d", c.History.Capacity, MaxHistoryCapacity)
		c.History.Capacity = MaxHistoryCapacity
	}
	seen := make(map[string]bool, len(c.Intersections))
	for i, in := range c.Intersections {
		if in.ID == "" {
			return c, fmt.Errorf("%w: intersections[%d].id is empty", ErrInvalidConfig, i)
		}
		if seen[in.ID] {
			return c, fmt.Errorf("%w: duplicate intersection id %q", ErrInvalidConfig, in.ID)
		}
		seen[in.ID] = true
		if in.VehicleCount < 0 {
			c.Intersections[i].VehicleCount = 0
		}
	}
	return c, nil
}
