package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/metrics"
)

func TestAggregateEmpty(t *testing.T) {
	m := metrics.Aggregate(metrics.TrafficMetrics{}, entity.VehicleQueue{}, entity.VehicleQueue{}, 1.0)
	assert.Equal(t, metrics.TrafficMetrics{}, m)
	assert.Equal(t, metrics.LevelSuccess, m.CongestionLevel())
}

func TestAggregateClear(t *testing.T) {
	q := entity.VehicleQueue{North: 4, South: 2, East: 3, West: 1} // T=10
	departed := entity.VehicleQueue{North: 3, South: 2}
	m := metrics.Aggregate(metrics.TrafficMetrics{TotalVehiclesProcessed: 7}, q, departed, 1.0)
	assert.InDelta(t, 25.0, m.AvgWaitTime, 1e-9)
	assert.InDelta(t, 50.0, m.CongestionIndex, 1e-9)
	assert.Equal(t, int32(30), m.VehiclesPerMinute)
	assert.Equal(t, int64(12), m.TotalVehiclesProcessed)
	assert.Equal(t, metrics.LevelWarning, m.CongestionLevel())
}

func TestAggregateSnow(t *testing.T) {
	impact := entity.WeatherSnow.Impact()
	q := entity.VehicleQueue{North: 3, East: 3} // T=6
	m := metrics.Aggregate(metrics.TrafficMetrics{}, q, entity.VehicleQueue{}, impact)
	assert.InDelta(t, 6*2.5*1.4, m.AvgWaitTime, 1e-9)
	assert.InDelta(t, 6*5/0.6, m.CongestionIndex, 1e-9)

	q = entity.VehicleQueue{North: 20}
	m = metrics.Aggregate(m, q, entity.VehicleQueue{}, impact)
	assert.Equal(t, 100.0, m.CongestionIndex)
	assert.Equal(t, metrics.LevelDanger, m.CongestionLevel())
}

func TestAggregateZeroImpact(t *testing.T) {
	m := metrics.Aggregate(metrics.TrafficMetrics{}, entity.VehicleQueue{North: 5}, entity.VehicleQueue{}, 0)
	assert.Equal(t, 0.0, m.CongestionIndex)
}

func TestTotalMonotonic(t *testing.T) {
	var m metrics.TrafficMetrics
	prev := int64(0)
	for i := range 20 {
		m = metrics.Aggregate(m, entity.VehicleQueue{West: int32(i)}, entity.VehicleQueue{East: int32(i % 3)}, 0.8)
		assert.GreaterOrEqual(t, m.TotalVehiclesProcessed, prev)
		prev = m.TotalVehiclesProcessed
	}
	assert.Equal(t, int64(19), prev)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, metrics.StatusEmergency, metrics.StatusOf(true, true, true))
	assert.Equal(t, metrics.StatusPedestrian, metrics.StatusOf(false, true, false))
	assert.Equal(t, metrics.StatusAdaptive, metrics.StatusOf(false, false, true))
	assert.Equal(t, metrics.StatusFixed, metrics.StatusOf(false, false, false))
}

func TestChartAndDirections(t *testing.T) {
	q := entity.VehicleQueue{North: 1, South: 2, East: 3, West: 4}
	p := metrics.NewChartPoint(40, q, metrics.TrafficMetrics{AvgWaitTime: 25, CongestionIndex: 50})
	assert.Equal(t, metrics.ChartPoint{Elapsed: 40, Vehicles: 10, WaitTime: 25, Congestion: 50}, p)

	d := metrics.Directions(q)
	assert.Len(t, d, 4)
	assert.Equal(t, metrics.DirectionPoint{Direction: entity.DirectionEast, Vehicles: 3}, d[2])
}
