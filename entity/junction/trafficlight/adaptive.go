// 提供按排队负载分配绿灯时间的自适应配时算法
// 与最大压力法思路一致：负载越大的方向获得越长的绿灯，但任何方向都不低于最小绿灯时长
package trafficlight

import (
	"flag"
	"math"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
)

var (
	minSamples = flag.Int("tl.adaptive_min_samples", 5, "自适应配时所需的最少历史样本数")
	window     = flag.Int("tl.adaptive_window", 10, "自适应配时使用的最近历史样本数")

	log = logrus.WithField("module", "trafficlight")
)

// AdaptiveTiming 自适应配时控制器
// 功能：根据最近的排队历史计算南北/东西绿灯时长
type AdaptiveTiming struct {
	MinSamples int // 样本数少于该值时退化为均分
	Window     int // 参与平均的最近样本数
}

// NewAdaptiveTiming 使用命令行参数创建自适应配时控制器
func NewAdaptiveTiming() AdaptiveTiming {
	return AdaptiveTiming{MinSamples: *minSamples, Window: *window}
}

// Compute 计算配时
// 功能：按南北、东西两组的平均负载占比分配周期时长
// 参数：history-排队历史（从旧到新），s-当前信控配置
// 返回：配时结果，总是南北/东西两个时长
// 算法说明：
// 1. 自适应关闭或样本数不足MinSamples时，返回均分
// 2. 取最近Window个样本，分别计算南北(north+south)与东西(east+west)的平均负载
// 3. 总负载为0时返回均分
// 4. ns = max(minGreen, floor(cycle*nsShare))，ew = max(minGreen, cycle-ns)
// 说明：极端比例下ns可能超过cycle-minGreen，此时ew被抬升到minGreen，
// 两者之和大于周期时长（周期被拉长），保持原公式不额外截断
func (a AdaptiveTiming) Compute(history []entity.VehicleQueue, s entity.Settings) Timing {
	if !s.AdaptiveMode || len(history) < a.MinSamples {
		return EvenSplit(s.CycleTime)
	}
	recent := history[max(len(history)-a.Window, 0):]
	n := float64(len(recent))
	nsLoad := float64(lo.SumBy(recent, func(q entity.VehicleQueue) int32 { return q.NorthSouth() })) / n
	ewLoad := float64(lo.SumBy(recent, func(q entity.VehicleQueue) int32 { return q.EastWest() })) / n
	total := nsLoad + ewLoad
	if total == 0 {
		return EvenSplit(s.CycleTime)
	}
	cycle := float64(s.CycleTime)
	minGreen := float64(s.MinGreenTime)
	ns := math.Max(minGreen, math.Floor(cycle*nsLoad/total))
	ew := math.Max(minGreen, cycle-ns)
	if ns+ew > cycle {
		log.Debugf("adaptive split %v+%v exceeds cycle time %v", ns, ew, cycle)
	}
	return Timing{NSGreen: ns, EWGreen: ew}
}
