// 信号抢占控制：紧急车辆优先与行人过街相位
// 优先级严格为 紧急车辆 > 行人相位 > 正常周期，高优先级完全替换低优先级的输出
package preemption

import (
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
)

// EmergencyDuration 紧急抢占持续时间（秒）
const EmergencyDuration int32 = 30

// EmergencyRate 紧急抢占期间紧急方向每步的通行车辆数
const EmergencyRate int32 = 5

var log = logrus.WithField("module", "preemption")

// Emergency 紧急车辆抢占状态
// 功能：两步选择协议，先选车辆类型（等待方向），再选方向（进入抢占并开始倒计时）
// 说明：值类型，所有修改均返回新值
type Emergency struct {
	Vehicle   entity.VehicleType `json:"vehicle"`
	Direction entity.Direction   `json:"direction"`
	Remaining int32              `json:"remaining"`
}

// Engaged 是否已选择车辆类型（等待方向或已生效）
func (e Emergency) Engaged() bool {
	return e.Vehicle != entity.VehicleNone
}

// Pending 已选择车辆类型、尚未选择方向
func (e Emergency) Pending() bool {
	return e.Engaged() && e.Direction == entity.DirectionNone
}

// Active 抢占是否生效
func (e Emergency) Active() bool {
	return e.Engaged() && e.Direction != entity.DirectionNone && e.Remaining > 0
}

// Trigger 处理操作员的紧急车辆选择
// 功能：根据车辆类型与方向进入取消、等待方向或抢占生效状态
// 参数：vehicle-车辆类型（VehicleNone表示取消），direction-方向（DirectionNone表示尚未选择）
// 返回：新的抢占状态
// 算法说明：
// 1. 车辆类型为空：立即清除，不论剩余时间
// 2. 未指定方向：进入等待方向子状态
// 3. 指定方向：进入抢占，倒计时EmergencyDuration秒
func (e Emergency) Trigger(vehicle entity.VehicleType, direction entity.Direction) Emergency {
	switch {
	case vehicle == entity.VehicleNone:
		if e.Engaged() {
			log.Infof("emergency %s cancelled", e.Vehicle)
		}
		return Emergency{}
	case direction == entity.DirectionNone:
		return Emergency{Vehicle: vehicle}
	default:
		log.Infof("emergency %s preempting %s for %ds", vehicle, direction, EmergencyDuration)
		return Emergency{Vehicle: vehicle, Direction: direction, Remaining: EmergencyDuration}
	}
}

// Countdown 倒计时一秒，归零时清除车辆类型与方向
// 说明：等待方向子状态没有倒计时，保持不变
func (e Emergency) Countdown() Emergency {
	if e.Remaining <= 0 {
		return e
	}
	e.Remaining--
	if e.Remaining == 0 {
		log.Infof("emergency %s toward %s cleared", e.Vehicle, e.Direction)
		return Emergency{}
	}
	return e
}

// Phase 抢占相位：紧急方向所在的方向组绿灯，另一组红灯
// 说明：南北（东西）共用一组信号，不区分同一轴上的两个进口
func (e Emergency) Phase() entity.PhasePair {
	if e.Direction.IsNorthSouth() {
		return entity.PhasePair{NS: entity.LightGreen, EW: entity.LightRed}
	}
	return entity.PhasePair{NS: entity.LightRed, EW: entity.LightGreen}
}
