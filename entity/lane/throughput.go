package lane

import (
	"math"

	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
)

// baseRate 正常放行时每个绿灯方向每步的通行车辆数（晴天）
const baseRate = 3.0

// Control 本步通行所依据的信控状态
type Control struct {
	Phase         entity.PhasePair // 正常周期相位
	Pedestrian    bool             // 行人全红相位进行中
	Emergency     entity.Direction // 紧急抢占方向，DirectionNone表示无抢占
	EmergencyRate int32            // 紧急方向每步通行数
}

// ThroughputModel 通行模型
// 功能：按优先级（紧急 > 行人 > 正常）计算每个方向本步离开路口的车辆数
type ThroughputModel struct{}

// Rate 正常放行速率 floor(3*impact)
func (ThroughputModel) Rate(impact float64) int32 {
	return int32(math.Floor(baseRate * impact))
}

// Departures 计算本步离开的车辆数
// 功能：按信控状态计算各方向离开数，每个方向不超过其排队数
// 参数：q-当前排队，c-信控状态，impact-天气系数
// 返回：各方向离开数
// 算法说明：
// 1. 紧急抢占：只有紧急方向以EmergencyRate离开，其余方向为0
// 2. 行人相位：所有方向为0
// 3. 正常：绿灯方向以floor(3*impact)离开，黄灯与红灯方向为0
func (m ThroughputModel) Departures(q entity.VehicleQueue, c Control, impact float64) entity.VehicleQueue {
	var out entity.VehicleQueue
	switch {
	case c.Emergency != entity.DirectionNone:
		out = out.With(c.Emergency, min(q.Get(c.Emergency), c.EmergencyRate))
	case c.Pedestrian:
	default:
		rate := m.Rate(impact)
		for _, d := range entity.Directions {
			if c.Phase.Green(d) {
				out = out.With(d, min(q.Get(d), rate))
			}
		}
	}
	return out
}
