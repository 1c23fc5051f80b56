package preemption

import "github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"

const (
	PedestrianDuration int32 = 15 // 行人全红相位时长（秒）
	AdmissionWindow    int32 = 30 // 行人相位只在tick为该值整数倍时准入
)

// Pedestrian 行人过街状态
// 功能：记录各方向的过街请求与全红行人相位的倒计时
type Pedestrian struct {
	Requests  entity.PedestrianRequests `json:"requests"`
	Active    bool                      `json:"active"`
	Remaining int32                     `json:"remaining"`
}

// Toggle 翻转某方向的过街请求，紧急车辆介入期间忽略
func (p Pedestrian) Toggle(d entity.Direction, emergencyEngaged bool) Pedestrian {
	if emergencyEngaged {
		return p
	}
	p.Requests = p.Requests.Toggle(d)
	return p
}

// Admit 行人相位准入检查
// 功能：判断本步是否插入全红行人相位
// 参数：tick-经过的步数，emergencyEngaged-是否有紧急车辆介入
// 返回：新的状态，以及是否在本步激活
// 算法说明：同时满足以下条件才激活
// 1. 至少存在一个过街请求
// 2. 当前没有进行中的行人相位
// 3. 没有紧急车辆介入
// 4. tick是AdmissionWindow的整数倍（周期性准入窗口，限制打断车流的频率）
func (p Pedestrian) Admit(tick int32, emergencyEngaged bool) (Pedestrian, bool) {
	if !p.Requests.Any() || p.Active || emergencyEngaged || tick%AdmissionWindow != 0 {
		return p, false
	}
	p.Active = true
	p.Remaining = PedestrianDuration
	log.Infof("pedestrian phase admitted at tick %d for %ds", tick, PedestrianDuration)
	return p, true
}

// Countdown 倒计时一秒，到期后结束相位并清空全部请求
// 说明：相位期间新到达的请求同样被清空
func (p Pedestrian) Countdown() Pedestrian {
	if !p.Active {
		return p
	}
	p.Remaining--
	if p.Remaining <= 0 {
		log.Info("pedestrian phase expired")
		return Pedestrian{}
	}
	return p
}

// Cancel 被紧急车辆抢占时立即结束行人相位，保留未处理的请求
func (p Pedestrian) Cancel() Pedestrian {
	if p.Active {
		log.Info("pedestrian phase cancelled by emergency preemption")
	}
	p.Active = false
	p.Remaining = 0
	return p
}
