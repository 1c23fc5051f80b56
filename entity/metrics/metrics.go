// 路口运行指标：平均等待、拥堵指数、通行速率与累计通行量
package metrics

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
)

const (
	waitPerVehicle       = 2.5 // 每辆排队车辆贡献的等待秒数（晴天）
	congestionPerVehicle = 5.0 // 每辆排队车辆贡献的拥堵指数
	maxCongestion        = 100.0
	ticksPerMinute       = 6 // 单步离开数外推为每分钟通行量的乘数
)

// TrafficMetrics 路口运行指标
// 说明：除累计通行量外，每步由排队与天气重新计算
type TrafficMetrics struct {
	AvgWaitTime            float64 `json:"avgWaitTime"`
	VehiclesPerMinute      int32   `json:"vehiclesPerMinute"`
	CongestionIndex        float64 `json:"congestionIndex"`
	TotalVehiclesProcessed int64   `json:"totalVehiclesProcessed"`
}

// Aggregate 计算本步指标
// 功能：由本步结束时的排队、本步离开数与天气系数计算指标
// 参数：prev-上一步指标，queue-本步结束时的排队，departed-本步离开数，impact-天气系数
// 返回：本步指标
// 算法说明：
// 1. T为排队总数，平均等待 = T>0 ? T*2.5*(2-impact) : 0
// 2. 拥堵指数 = min(100, T*5/impact)，impact<=0时为0
// 3. 每分钟通行量 = 本步离开数*6（外推值，不是滑动平均）
// 4. 累计通行量单调递增，只在复位时清零
func Aggregate(prev TrafficMetrics, queue, departed entity.VehicleQueue, impact float64) TrafficMetrics {
	total := float64(queue.Total())
	out := TrafficMetrics{
		VehiclesPerMinute:      departed.Total() * ticksPerMinute,
		TotalVehiclesProcessed: prev.TotalVehiclesProcessed + int64(departed.Total()),
	}
	if total > 0 {
		out.AvgWaitTime = total * waitPerVehicle * (2 - impact)
	}
	if impact > 0 {
		out.CongestionIndex = min(maxCongestion, total*congestionPerVehicle/impact)
	}
	return out
}

// Level 拥堵等级
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// CongestionLevel 拥堵等级：<30正常，<70警告，其余严重
func (m TrafficMetrics) CongestionLevel() Level {
	switch {
	case m.CongestionIndex < 30:
		return LevelSuccess
	case m.CongestionIndex < 70:
		return LevelWarning
	default:
		return LevelDanger
	}
}

// ChartPoint 图表数据点，按采样间隔记录
type ChartPoint struct {
	Elapsed    int32   `json:"elapsed"`
	Vehicles   int32   `json:"vehicles"`
	WaitTime   float64 `json:"waitTime"`
	Congestion float64 `json:"congestion"`
}

// NewChartPoint 由排队与指标生成图表数据点
func NewChartPoint(elapsed int32, queue entity.VehicleQueue, m TrafficMetrics) ChartPoint {
	return ChartPoint{
		Elapsed:    elapsed,
		Vehicles:   queue.Total(),
		WaitTime:   m.AvgWaitTime,
		Congestion: m.CongestionIndex,
	}
}

// DirectionPoint 单个方向的排队数
type DirectionPoint struct {
	Direction entity.Direction `json:"direction"`
	Vehicles  int32            `json:"vehicles"`
}

// Directions 按北、南、东、西顺序展开排队
func Directions(q entity.VehicleQueue) []DirectionPoint {
	return lo.Map(entity.Directions, func(d entity.Direction, _ int) DirectionPoint {
		return DirectionPoint{Direction: d, Vehicles: q.Get(d)}
	})
}

// Status 系统控制状态
type Status string

const (
	StatusEmergency  Status = "Emergency Override"
	StatusPedestrian Status = "Pedestrian Phase"
	StatusAdaptive   Status = "Adaptive Control"
	StatusFixed      Status = "Fixed Timing"
)

// StatusOf 按抢占优先级给出当前控制状态
func StatusOf(emergencyActive, pedestrianActive, adaptive bool) Status {
	switch {
	case emergencyActive:
		return StatusEmergency
	case pedestrianActive:
		return StatusPedestrian
	case adaptive:
		return StatusAdaptive
	default:
		return StatusFixed
	}
}
