// 四相位固定顺序信号机：南北绿 -> 南北黄 -> 东西绿 -> 东西黄 -> 循环
// 相位由周期位置 p = tick mod 周期长度 唯一确定，覆盖期间虚拟时钟照常推进
package trafficlight

import (
	"math"

	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
)

// YellowTime 黄灯时长（秒）
const YellowTime = 3.0

// Stage 信号周期中的阶段
type Stage int

const (
	StageNSGreen Stage = iota
	StageNSYellow
	StageEWGreen
	StageEWYellow
)

func (s Stage) String() string {
	switch s {
	case StageNSGreen:
		return "NS_GREEN"
	case StageNSYellow:
		return "NS_YELLOW"
	case StageEWGreen:
		return "EW_GREEN"
	case StageEWYellow:
		return "EW_YELLOW"
	}
	return "UNKNOWN"
}

// Phase 阶段对应的两组信号颜色
func (s Stage) Phase() entity.PhasePair {
	switch s {
	case StageNSGreen:
		return entity.PhasePair{NS: entity.LightGreen, EW: entity.LightRed}
	case StageNSYellow:
		return entity.PhasePair{NS: entity.LightYellow, EW: entity.LightRed}
	case StageEWGreen:
		return entity.PhasePair{NS: entity.LightRed, EW: entity.LightGreen}
	default:
		return entity.PhasePair{NS: entity.LightRed, EW: entity.LightYellow}
	}
}

// Timing 南北/东西绿灯时长（秒）
// 说明：无论固定配时还是自适应配时都返回该结构，消费方无需区分
type Timing struct {
	NSGreen float64 `json:"nsGreen"`
	EWGreen float64 `json:"ewGreen"`
}

// EvenSplit 均分配时，两个方向各取周期时长的一半
func EvenSplit(cycleTime int32) Timing {
	half := float64(cycleTime) / 2
	return Timing{NSGreen: half, EWGreen: half}
}

// CycleLength 完整周期长度 = 南北绿 + 黄 + 东西绿 + 黄
func (t Timing) CycleLength() float64 {
	return t.NSGreen + YellowTime + t.EWGreen + YellowTime
}

// Signal 某一时刻的信号机输出
type Signal struct {
	Phase     entity.PhasePair `json:"phase"`
	Stage     Stage            `json:"stage"`
	Position  float64          `json:"position"`  // 周期位置
	Remaining float64          `json:"remaining"` // 当前阶段剩余时间
}

// StageAt 根据周期位置选择阶段
// 功能：按区间归属判断阶段并计算阶段剩余时间
// 参数：position-周期位置，取值[0, CycleLength)
// 返回：阶段与该阶段的剩余时间
// 算法说明：
// 1. [0, ns) 南北绿
// 2. [ns, ns+3) 南北黄
// 3. [ns+3, ns+3+ew) 东西绿
// 4. 其余为东西黄
func (t Timing) StageAt(position float64) (Stage, float64) {
	nsYellowStart := t.NSGreen
	ewGreenStart := nsYellowStart + YellowTime
	ewYellowStart := ewGreenStart + t.EWGreen
	switch {
	case position < nsYellowStart:
		return StageNSGreen, nsYellowStart - position
	case position < ewGreenStart:
		return StageNSYellow, ewGreenStart - position
	case position < ewYellowStart:
		return StageEWGreen, ewYellowStart - position
	default:
		return StageEWYellow, t.CycleLength() - position
	}
}

// Evaluate 计算第tick步的信号输出
// 功能：由经过的步数直接求出周期位置与相位，不依赖历史状态
// 参数：tick-经过的步数（虚拟时钟，覆盖期间同样推进）
// 返回：信号输出
func (t Timing) Evaluate(tick int32) Signal {
	length := t.CycleLength()
	if length <= 0 {
		return Signal{Phase: entity.BasePhase}
	}
	position := math.Mod(float64(tick), length)
	if position < 0 {
		position += length
	}
	stage, remaining := t.StageAt(position)
	return Signal{
		Phase:     stage.Phase(),
		Stage:     stage,
		Position:  position,
		Remaining: remaining,
	}
}
