package trafficlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/junction/trafficlight"
)

var (
	nsGreen  = entity.PhasePair{NS: entity.LightGreen, EW: entity.LightRed}
	nsYellow = entity.PhasePair{NS: entity.LightYellow, EW: entity.LightRed}
	ewGreen  = entity.PhasePair{NS: entity.LightRed, EW: entity.LightGreen}
	ewYellow = entity.PhasePair{NS: entity.LightRed, EW: entity.LightYellow}
)

func TestFixedCycleSixty(t *testing.T) {
	timing := trafficlight.EvenSplit(60)
	assert.Equal(t, 66.0, timing.CycleLength())
	for tick := int32(0); tick < 132; tick++ {
		p := tick % 66
		want := ewYellow
		switch {
		case p < 30:
			want = nsGreen
		case p < 33:
			want = nsYellow
		case p < 63:
			want = ewGreen
		}
		sig := timing.Evaluate(tick)
		assert.Equal(t, want, sig.Phase, "tick %d", tick)
		assert.False(t, sig.Phase.Conflicting(), "tick %d", tick)
	}
}

func TestEvaluateStageAndRemaining(t *testing.T) {
	timing := trafficlight.Timing{NSGreen: 20, EWGreen: 40}
	sig := timing.Evaluate(0)
	assert.Equal(t, trafficlight.StageNSGreen, sig.Stage)
	assert.Equal(t, 20.0, sig.Remaining)

	sig = timing.Evaluate(21)
	assert.Equal(t, trafficlight.StageNSYellow, sig.Stage)
	assert.Equal(t, 2.0, sig.Remaining)

	sig = timing.Evaluate(23)
	assert.Equal(t, trafficlight.StageEWGreen, sig.Stage)
	assert.Equal(t, "EW_GREEN", sig.Stage.String())

	sig = timing.Evaluate(65)
	assert.Equal(t, trafficlight.StageEWYellow, sig.Stage)
	assert.Equal(t, 1.0, sig.Remaining)

	// 周期长度66，tick 66回到起点
	assert.Equal(t, trafficlight.StageNSGreen, timing.Evaluate(66).Stage)
}

func TestEvaluateOddCycle(t *testing.T) {
	timing := trafficlight.EvenSplit(45)
	assert.Equal(t, 22.5, timing.NSGreen)
	assert.Equal(t, 51.0, timing.CycleLength())
	assert.Equal(t, nsGreen, timing.Evaluate(22).Phase)
	assert.Equal(t, nsYellow, timing.Evaluate(23).Phase)
	assert.Equal(t, nsYellow, timing.Evaluate(25).Phase)
	assert.Equal(t, ewGreen, timing.Evaluate(26).Phase)
}

func TestEvaluateDegenerate(t *testing.T) {
	sig := trafficlight.Timing{NSGreen: -3, EWGreen: -3}.Evaluate(5)
	assert.Equal(t, entity.BasePhase, sig.Phase)
}

func queues(n int, q entity.VehicleQueue) []entity.VehicleQueue {
	out := make([]entity.VehicleQueue, n)
	for i := range out {
		out[i] = q
	}
	return out
}

func TestAdaptiveFewSamplesEvenSplit(t *testing.T) {
	a := trafficlight.AdaptiveTiming{MinSamples: 5, Window: 10}
	s := entity.Settings{AdaptiveMode: true, CycleTime: 60, MinGreenTime: 10}
	heavy := entity.VehicleQueue{North: 40, South: 40}
	for n := 0; n < 5; n++ {
		assert.Equal(t, trafficlight.EvenSplit(60), a.Compute(queues(n, heavy), s), "samples %d", n)
	}
}

func TestAdaptiveDisabledEvenSplit(t *testing.T) {
	a := trafficlight.AdaptiveTiming{MinSamples: 5, Window: 10}
	s := entity.Settings{AdaptiveMode: false, CycleTime: 80, MinGreenTime: 10}
	got := a.Compute(queues(20, entity.VehicleQueue{East: 9}), s)
	assert.Equal(t, trafficlight.Timing{NSGreen: 40, EWGreen: 40}, got)
}

func TestAdaptiveZeroLoadEvenSplit(t *testing.T) {
	a := trafficlight.AdaptiveTiming{MinSamples: 5, Window: 10}
	s := entity.Settings{AdaptiveMode: true, CycleTime: 60, MinGreenTime: 10}
	assert.Equal(t, trafficlight.EvenSplit(60), a.Compute(queues(8, entity.VehicleQueue{}), s))
}

func TestAdaptiveProportional(t *testing.T) {
	a := trafficlight.AdaptiveTiming{MinSamples: 5, Window: 10}
	s := entity.Settings{AdaptiveMode: true, CycleTime: 60, MinGreenTime: 10}
	// 南北负载12，东西负载6 -> 南北占2/3
	got := a.Compute(queues(6, entity.VehicleQueue{North: 8, South: 4, East: 3, West: 3}), s)
	assert.Equal(t, trafficlight.Timing{NSGreen: 40, EWGreen: 20}, got)
	assert.Equal(t, 66.0, got.CycleLength())
}

func TestAdaptiveUsesRecentWindow(t *testing.T) {
	a := trafficlight.AdaptiveTiming{MinSamples: 5, Window: 10}
	s := entity.Settings{AdaptiveMode: true, CycleTime: 60, MinGreenTime: 10}
	// 旧样本全部为东西负载，不在最近10个样本内
	history := append(queues(30, entity.VehicleQueue{East: 50}), queues(10, entity.VehicleQueue{North: 5, East: 5})...)
	assert.Equal(t, trafficlight.Timing{NSGreen: 30, EWGreen: 30}, a.Compute(history, s))
}

func TestAdaptiveMinimumGreen(t *testing.T) {
	a := trafficlight.AdaptiveTiming{MinSamples: 5, Window: 10}
	s := entity.Settings{AdaptiveMode: true, CycleTime: 60, MinGreenTime: 10}
	// 南北几乎无车：南北被抬升到最小绿灯
	got := a.Compute(queues(5, entity.VehicleQueue{North: 1, East: 99}), s)
	assert.Equal(t, 10.0, got.NSGreen)
	assert.Equal(t, 50.0, got.EWGreen)
}

func TestAdaptiveExtremeRatioStretchesCycle(t *testing.T) {
	a := trafficlight.AdaptiveTiming{MinSamples: 5, Window: 10}
	s := entity.Settings{AdaptiveMode: true, CycleTime: 60, MinGreenTime: 10}
	// 东西几乎无车：ns=floor(60*0.99)=59 > cycle-minGreen，ew被抬升到10，合计超过周期时长
	got := a.Compute(queues(5, entity.VehicleQueue{North: 99, East: 1}), s)
	assert.Equal(t, 59.0, got.NSGreen)
	assert.Equal(t, 10.0, got.EWGreen)
	assert.Greater(t, got.NSGreen+got.EWGreen, float64(s.CycleTime))
	assert.GreaterOrEqual(t, got.EWGreen, float64(s.MinGreenTime))
}
