package preemption_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/junction/preemption"
)

func TestEmergencyTwoStepSelection(t *testing.T) {
	var e preemption.Emergency
	assert.False(t, e.Engaged())

	e = e.Trigger(entity.VehicleAmbulance, entity.DirectionNone)
	assert.True(t, e.Engaged())
	assert.True(t, e.Pending())
	assert.False(t, e.Active())
	// 等待方向时不倒计时
	assert.Equal(t, e, e.Countdown())

	e = e.Trigger(entity.VehicleAmbulance, entity.DirectionNorth)
	assert.False(t, e.Pending())
	assert.True(t, e.Active())
	assert.Equal(t, preemption.EmergencyDuration, e.Remaining)
	assert.Equal(t, entity.PhasePair{NS: entity.LightGreen, EW: entity.LightRed}, e.Phase())
}

func TestEmergencyCountdownClears(t *testing.T) {
	e := preemption.Emergency{}.Trigger(entity.VehiclePolice, entity.DirectionWest)
	assert.Equal(t, entity.PhasePair{NS: entity.LightRed, EW: entity.LightGreen}, e.Phase())
	for i := int32(1); i < preemption.EmergencyDuration; i++ {
		e = e.Countdown()
		assert.True(t, e.Active(), "second %d", i)
	}
	e = e.Countdown()
	assert.Equal(t, preemption.Emergency{}, e)
	assert.False(t, e.Engaged())
}

func TestEmergencyCancel(t *testing.T) {
	e := preemption.Emergency{}.Trigger(entity.VehicleFireTruck, entity.DirectionEast)
	e = e.Countdown().Countdown()
	e = e.Trigger(entity.VehicleNone, entity.DirectionNone)
	assert.Equal(t, preemption.Emergency{}, e)
}

func TestPedestrianToggleIgnoredDuringEmergency(t *testing.T) {
	var p preemption.Pedestrian
	p = p.Toggle(entity.DirectionNorth, true)
	assert.False(t, p.Requests.Any())
	p = p.Toggle(entity.DirectionNorth, false)
	assert.True(t, p.Requests.North)
	p = p.Toggle(entity.DirectionNorth, false)
	assert.False(t, p.Requests.North)
}

func TestPedestrianAdmissionWindow(t *testing.T) {
	p := preemption.Pedestrian{}.Toggle(entity.DirectionSouth, false)

	_, ok := p.Admit(29, false)
	assert.False(t, ok, "not a multiple of 30")
	_, ok = p.Admit(30, true)
	assert.False(t, ok, "emergency engaged")
	_, ok = preemption.Pedestrian{}.Admit(30, false)
	assert.False(t, ok, "no requests")

	active, ok := p.Admit(60, false)
	assert.True(t, ok)
	assert.True(t, active.Active)
	assert.Equal(t, preemption.PedestrianDuration, active.Remaining)

	_, ok = active.Admit(90, false)
	assert.False(t, ok, "already active")
}

func TestPedestrianExpiryResetsRequests(t *testing.T) {
	p := preemption.Pedestrian{}.Toggle(entity.DirectionEast, false)
	p, _ = p.Admit(0, false)
	p = p.Toggle(entity.DirectionWest, false)
	for i := int32(1); i < preemption.PedestrianDuration; i++ {
		p = p.Countdown()
		assert.True(t, p.Active)
	}
	p = p.Countdown()
	assert.Equal(t, preemption.Pedestrian{}, p)
	// 未激活时倒计时无影响
	assert.Equal(t, p, p.Countdown())
}

func TestPedestrianCancelKeepsRequests(t *testing.T) {
	p := preemption.Pedestrian{}.Toggle(entity.DirectionEast, false)
	p, _ = p.Admit(0, false)
	p = p.Cancel()
	assert.False(t, p.Active)
	assert.Equal(t, int32(0), p.Remaining)
	assert.True(t, p.Requests.East)
}
