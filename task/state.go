package task

import (
	"slices"

	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/junction"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/junction/preemption"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/metrics"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/utils/config"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/utils/container"
)

// State 仿真状态
// 功能：一个路口仿真的全部状态，由引擎独占
// 说明：Step读取上一步的State并返回新的State，不修改输入
type State struct {
	Running bool  // 是否运行
	Elapsed int32 // 经过的步数（秒）

	Settings entity.Settings // 信控设置，命令在两步之间修改
	Weather  entity.Weather  // 天气

	Queue    entity.VehicleQueue // 主路口各方向排队
	Departed entity.VehicleQueue // 本步离开数
	Phase    entity.PhasePair    // 主路口相位（含抢占）

	Timing trafficlight.Timing // 本步正常周期使用的配时
	Signal trafficlight.Signal // 本步正常周期的信号输出，抢占期间同样推进

	Emergency  preemption.Emergency  // 紧急车辆抢占
	Pedestrian preemption.Pedestrian // 行人过街

	History container.Ring[entity.VehicleQueue] // 排队历史，供自适应配时与图表使用
	Chart   container.Ring[metrics.ChartPoint]  // 图表数据点
	Metrics metrics.TrafficMetrics

	Intersections []junction.Record // 次级路口
}

// NewState 根据配置创建初始状态
// 功能：以配置中的初始排队、信控设置与次级路口创建状态
// 参数：c-校验后的配置，coordinator-多路口协调器
// 返回：初始状态
func NewState(c config.Config, coordinator *junction.Manager) State {
	settings := c.Settings()
	return State{
		Running:       c.Control.Autostart,
		Settings:      settings,
		Weather:       c.Weather,
		Queue:         c.InitialQueue,
		Phase:         entity.BasePhase,
		Timing:        trafficlight.EvenSplit(settings.CycleTime),
		Signal:        trafficlight.Signal{Phase: entity.BasePhase},
		History:       container.NewRing[entity.VehicleQueue](c.History.Capacity),
		Chart:         container.NewRing[metrics.ChartPoint](c.History.ChartCapacity),
		Intersections: coordinator.Init(settings.GreenWave),
	}
}

// Clone 深复制，新状态与原状态不共享可变数据
func (s State) Clone() State {
	s.History = s.History.Clone()
	s.Chart = s.Chart.Clone()
	s.Intersections = slices.Clone(s.Intersections)
	return s
}

// reset 复位
// 功能：停止运行，清空计数、排队、历史与抢占，恢复基础相位与次级路口初始值
// 说明：信控设置、天气与绿波开关保持不变；结果只由这些字段决定，因此多次复位结果相同
func (s State) reset(coordinator *junction.Manager) State {
	return State{
		Settings:      s.Settings,
		Weather:       s.Weather,
		Phase:         entity.BasePhase,
		Timing:        trafficlight.EvenSplit(s.Settings.CycleTime),
		Signal:        trafficlight.Signal{Phase: entity.BasePhase},
		History:       container.NewRing[entity.VehicleQueue](s.History.Cap()),
		Chart:         container.NewRing[metrics.ChartPoint](s.Chart.Cap()),
		Intersections: coordinator.Init(s.Settings.GreenWave),
	}
}
