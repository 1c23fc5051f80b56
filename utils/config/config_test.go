package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/utils/config"
)

func TestDefault(t *testing.T) {
	c, err := config.Default().Validate()
	require.NoError(t, err)
	s := c.Settings()
	assert.True(t, s.AdaptiveMode)
	assert.True(t, s.GreenWave)
	assert.Equal(t, int32(60), s.CycleTime)
	assert.Equal(t, int32(10), s.MinGreenTime)
	assert.Equal(t, entity.VehicleQueue{North: 8, South: 6, East: 10, West: 7}, c.InitialQueue)
	assert.Len(t, c.Intersections, 3)
	assert.Equal(t, 50, c.History.Capacity)
}

func TestLoadOverridesAndClamps(t *testing.T) {
	data := []byte(`
control:
  step:
    total: 300
    interval: 0.5
  adaptive_mode: false
  cycle_time: 200
  min_green_time: 2
  green_wave: false
weather: snow
initial_queue:
  north: 1
  south: 2
  east: 3
  west: 4
intersections:
  - id: X
    name: Elm & 5th
    vehicle_count: 4
    phase:
      north_south: green
      east_west: red
`)
	c, err := config.Load(data)
	require.NoError(t, err)
	assert.Equal(t, int32(300), c.Control.Step.Total)
	assert.Equal(t, 0.5, c.Control.Step.Interval)
	assert.Equal(t, int32(120), c.Control.CycleTime)
	assert.Equal(t, int32(5), c.Control.MinGreenTime)
	assert.False(t, c.Settings().AdaptiveMode)
	assert.Equal(t, entity.WeatherSnow, c.Weather)
	assert.Equal(t, entity.VehicleQueue{North: 1, South: 2, East: 3, West: 4}, c.InitialQueue)
	require.Len(t, c.Intersections, 1)
	assert.Equal(t, "Elm & 5th", c.Intersections[0].Name)
	assert.Equal(t, entity.PhasePair{NS: entity.LightGreen, EW: entity.LightRed}, c.Intersections[0].Phase)
	// 未覆盖的字段保持默认
	assert.Equal(t, int32(10), c.History.SampleInterval)
}

func TestHistoryCapacityClamped(t *testing.T) {
	c, err := config.Load([]byte("history:\n  capacity: 500\n"))
	require.NoError(t, err)
	assert.Equal(t, config.MaxHistoryCapacity, c.History.Capacity)

	c, err = config.Load([]byte("history:\n  capacity: 12\n"))
	require.NoError(t, err)
	assert.Equal(t, 12, c.History.Capacity)
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "control:\n  foo: 1\n",
		"weather":        "weather: hail\n",
		"interval":       "control:\n  step:\n    interval: 0\n",
		"negative queue": "initial_queue:\n  north: -1\n",
		"rush window":    "arrival:\n  rush_hours:\n    - start: 9\n      end: 7\n",
		"duplicate id":   "intersections:\n  - id: A\n  - id: A\n",
		"empty id":       "intersections:\n  - name: x\n",
		"history":        "history:\n  capacity: 0\n",
	}
	for name, data := range cases {
		_, err := config.Load([]byte(data))
		assert.ErrorIs(t, err, config.ErrInvalidConfig, name)
	}
}
