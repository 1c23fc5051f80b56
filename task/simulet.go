package task

import (
	"flag"
	"time"

	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/junction"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/junction/preemption"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/lane"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/metrics"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/utils/config"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/utils/randengine"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// Env 单步计算依赖的模型
// 功能：汇集到达、通行、配时与多路口协调模型，以及共享的随机源
type Env struct {
	Rand        *randengine.Engine
	Arrivals    *lane.ArrivalModel
	Throughput  lane.ThroughputModel
	Adaptive    trafficlight.AdaptiveTiming
	Coordinator *junction.Manager

	SampleInterval int32 // 历史采样间隔（步）
}

// NewEnv 根据配置创建模型集合
// 参数：c-校验后的配置，now-本地时间来源（用于高峰时段判断，nil时使用time.Now）
// 返回：模型集合
func NewEnv(c config.Config, now func() time.Time) *Env {
	r := randengine.New(c.Arrival.Seed)
	return &Env{
		Rand:           r,
		Arrivals:       lane.NewArrivalModel(r, c.Arrival.RushHours, now),
		Adaptive:       trafficlight.NewAdaptiveTiming(),
		Coordinator:    junction.NewManager(c.Intersections),
		SampleInterval: max(c.History.SampleInterval, 1),
	}
}

// overrides 本步生效的抢占，由上一步状态决定
type overrides struct {
	emergency  bool
	pedestrian bool
}

// prepare 准备阶段
// 功能：读取上一步的抢占状态，推进紧急与行人倒计时，检查行人相位准入
// 参数：prev-上一步状态，next-待写入的新状态
// 返回：本步生效的抢占
// 算法说明：
// 1. 本步是否抢占由上一步的状态决定，倒计时结果在下一步才体现
// 2. 行人相位准入使用上一步的步数与紧急车辆状态，激活后从下一步开始全红
func prepare(prev State, next *State) overrides {
	o := overrides{
		emergency:  prev.Emergency.Active(),
		pedestrian: prev.Pedestrian.Active,
	}
	next.Emergency = prev.Emergency.Countdown()
	next.Pedestrian = prev.Pedestrian.Countdown()
	if admitted, ok := next.Pedestrian.Admit(prev.Elapsed, prev.Emergency.Engaged()); ok {
		next.Pedestrian = admitted
	}
	return o
}

// update 更新阶段
// 功能：依次完成到达、通行、相位、次级路口、历史与指标的计算
// 参数：prev-上一步状态，next-待写入的新状态，env-模型集合，o-本步生效的抢占
// 算法说明：
// 1. 到达：主路口与次级路口车辆数按天气与时段演化
// 2. 通行：按 紧急 > 行人 > 正常 的优先级计算离开数，正常放行使用上一步的相位
// 3. 相位：紧急抢占时紧急方向所在组绿灯；行人相位全红；否则按配时求周期位置
// 4. 次级路口：按偏移计算相位，主路口被抢占时全红
// 5. 历史：每SampleInterval步记录一次上一步的排队，同时记录图表数据点
// 6. 指标：由新的排队与本步离开数计算
func update(prev State, next *State, env *Env, o overrides) {
	t := prev.Elapsed
	impact := prev.Weather.Impact()

	queue := env.Arrivals.Arrive(prev.Queue, impact)
	intersections := env.Coordinator.Drift(prev.Intersections, impact, env.Rand)

	ctrl := lane.Control{
		Phase:         prev.Phase,
		Pedestrian:    o.pedestrian,
		EmergencyRate: preemption.EmergencyRate,
	}
	if o.emergency {
		ctrl.Emergency = prev.Emergency.Direction
	}
	next.Departed = env.Throughput.Departures(queue, ctrl, impact)
	next.Queue = queue.Sub(next.Departed)

	// 虚拟时钟在抢占期间同样推进，抢占结束后回到自然的周期位置
	next.Timing = env.Adaptive.Compute(prev.History.Slice(), prev.Settings)
	next.Signal = next.Timing.Evaluate(t)
	switch {
	case o.emergency:
		next.Phase = prev.Emergency.Phase()
	case o.pedestrian:
		next.Phase = entity.AllRed
	default:
		next.Phase = next.Signal.Phase
	}

	next.Intersections = env.Coordinator.Update(intersections, t, prev.Settings, o.emergency || o.pedestrian)

	next.Metrics = metrics.Aggregate(prev.Metrics, next.Queue, next.Departed, impact)
	if t%env.SampleInterval == 0 {
		next.History.Push(prev.Queue)
		next.Chart.Push(metrics.NewChartPoint(t, next.Queue, next.Metrics))
	}
}

// Step 计算下一步状态
// 功能：执行一次完整的仿真步，不修改输入状态
// 参数：prev-上一步状态，env-模型集合（随机源会前进）
// 返回：新状态
func Step(prev State, env *Env) State {
	next := prev.Clone()
	next.Elapsed = prev.Elapsed + 1
	o := prepare(prev, &next)
	update(prev, &next, env, o)
	return next
}
