package task

import (
	"slices"

	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/clock"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/junction"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/junction/preemption"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/metrics"
)

// Snapshot 每步发送给展示层的只读快照
// 说明：所有切片均为副本，接收方可以自由持有
type Snapshot struct {
	Running     bool   `json:"running"`
	Elapsed     int32  `json:"elapsed"`
	ElapsedText string `json:"elapsedText"` // m:ss

	Phase  entity.PhasePair    `json:"phase"`
	Signal trafficlight.Signal `json:"signal"`
	Timing trafficlight.Timing `json:"timing"`

	Queue         entity.VehicleQueue      `json:"queue"`
	Departed      entity.VehicleQueue      `json:"departed"`
	DirectionData []metrics.DirectionPoint `json:"directionData"`
	Metrics       metrics.TrafficMetrics   `json:"metrics"`
	Congestion    metrics.Level            `json:"congestionLevel"`
	History       []entity.VehicleQueue    `json:"history"`
	Chart         []metrics.ChartPoint     `json:"chart"`

	Emergency  preemption.Emergency  `json:"emergency"`
	Pedestrian preemption.Pedestrian `json:"pedestrian"`

	Weather       entity.Weather `json:"weather"`
	WeatherImpact float64        `json:"weatherImpact"`

	Intersections []junction.Record `json:"intersections"`
	GreenWave     bool              `json:"greenWave"`
	Settings      entity.Settings   `json:"settings"`
	Status        metrics.Status    `json:"status"`
}

// Snapshot 生成当前状态的快照
func (s State) Snapshot() Snapshot {
	return Snapshot{
		Running:       s.Running,
		Elapsed:       s.Elapsed,
		ElapsedText:   clock.FormatElapsed(s.Elapsed),
		Phase:         s.Phase,
		Signal:        s.Signal,
		Timing:        s.Timing,
		Queue:         s.Queue,
		Departed:      s.Departed,
		DirectionData: metrics.Directions(s.Queue),
		Metrics:       s.Metrics,
		Congestion:    s.Metrics.CongestionLevel(),
		History:       s.History.Slice(),
		Chart:         s.Chart.Slice(),
		Emergency:     s.Emergency,
		Pedestrian:    s.Pedestrian,
		Weather:       s.Weather,
		WeatherImpact: s.Weather.Impact(),
		Intersections: slices.Clone(s.Intersections),
		GreenWave:     s.Settings.GreenWave,
		Settings:      s.Settings,
		Status:        metrics.StatusOf(s.Emergency.Active(), s.Pedestrian.Active, s.Settings.AdaptiveMode),
	}
}
