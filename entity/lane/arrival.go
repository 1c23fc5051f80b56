package lane

import (
	"math"
	"time"

	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/utils/config"
)

const (
	arrivalSpread = 3.0 // 每步每方向随机到达量的上界系数
	rushFactor    = 2.0 // 高峰时段到达量乘数
)

// Sampler 随机源，返回[0,1)上的均匀分布
type Sampler interface {
	Float64() float64
}

// ArrivalModel 车辆到达模型
// 功能：按时段与天气为每个进口方向生成本步的净到达量
type ArrivalModel struct {
	sampler   Sampler
	rushHours []config.RushWindow
	now       func() time.Time
}

// NewArrivalModel 创建车辆到达模型
// 参数：sampler-随机源，rushHours-高峰时段（本地时间），now-当前本地时间（nil时使用time.Now）
// 返回：到达模型
func NewArrivalModel(sampler Sampler, rushHours []config.RushWindow, now func() time.Time) *ArrivalModel {
	if now == nil {
		now = time.Now
	}
	return &ArrivalModel{sampler: sampler, rushHours: rushHours, now: now}
}

// RushMultiplier 高峰时段乘数
// 功能：本地时间落在任一高峰时段（闭区间，按小时的小数表示）内返回2，否则返回1
func (m *ArrivalModel) RushMultiplier(t time.Time) float64 {
	hour := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	for _, w := range m.rushHours {
		if hour >= w.Start && hour <= w.End {
			return rushFactor
		}
	}
	return 1
}

// Arrive 生成本步到达后的排队
// 功能：每个方向独立抽样，净到达量 floor(rand[0,3)*rush*impact)-1，结果下限为0
// 参数：q-当前排队，impact-天气系数
// 返回：到达后的排队
// 说明：净到达量可能为-1，用于模拟无信号放行时的少量自然消散
func (m *ArrivalModel) Arrive(q entity.VehicleQueue, impact float64) entity.VehicleQueue {
	rush := m.RushMultiplier(m.now())
	for _, d := range entity.Directions {
		delta := int32(math.Floor(m.sampler.Float64()*arrivalSpread*rush*impact)) - 1
		q = q.With(d, q.Get(d)+delta)
	}
	return q
}
