package config

import "github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数
// 说明：一个逻辑步对应一秒仿真时间，Interval为驱动时钟的真实时间间隔
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数，0表示不限
	Interval float64 `yaml:"interval"` // 每步的真实时间间隔（秒）
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
// 说明：信控参数为初始值，运行中可通过命令修改
type Control struct {
	Step         ControlStep `yaml:"step"`
	AdaptiveMode bool        `yaml:"adaptive_mode"`
	CycleTime    int32       `yaml:"cycle_time"`     // 周期时长（秒），[30,120]
	MinGreenTime int32       `yaml:"min_green_time"` // 最小绿灯时长（秒），[5,30]
	GreenWave    bool        `yaml:"green_wave"`
	Autostart    bool        `yaml:"autostart,omitempty"` // 创建后立即开始运行
}

// RushWindow 高峰时段（本地时间，小时，闭区间）
type RushWindow struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// Arrival 车辆到达模型配置
type Arrival struct {
	Seed      uint64       `yaml:"seed"`
	RushHours []RushWindow `yaml:"rush_hours,omitempty"`
}

// History 历史窗口配置
type History struct {
	Capacity       int   `yaml:"capacity"`        // 历史样本容量
	SampleInterval int32 `yaml:"sample_interval"` // 采样间隔（步）
	ChartCapacity  int   `yaml:"chart_capacity"`  // 图表数据点容量
}

// Intersection 次级路口初始配置
type Intersection struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	VehicleCount int32  `yaml:"vehicle_count"`
	// 初始相位，为空时使用基础相位
	Phase entity.PhasePair `yaml:"phase,omitempty"`
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
type Config struct {
	Control       Control             `yaml:"control"`
	Arrival       Arrival             `yaml:"arrival"`
	History       History             `yaml:"history"`
	Weather       entity.Weather      `yaml:"weather"`
	InitialQueue  entity.VehicleQueue `yaml:"initial_queue"`
	Intersections []Intersection      `yaml:"intersections"`
}

// Settings 提取运行时可修改的信控配置
func (c Config) Settings() entity.Settings {
	return entity.Settings{
		AdaptiveMode: c.Control.AdaptiveMode,
		CycleTime:    c.Control.CycleTime,
		MinGreenTime: c.Control.MinGreenTime,
		GreenWave:    c.Control.GreenWave,
	}.Clamped()
}
