package entity

import "github.com/samber/lo"

// 可调配置的取值范围（秒）
const (
	MinCycleTime    int32 = 30
	MaxCycleTime    int32 = 120
	MinMinGreenTime int32 = 5
	MaxMinGreenTime int32 = 30
)

// Settings 操作员可在运行中修改的信控配置
// 说明：修改只在两步之间生效，下一步计算时读取
type Settings struct {
	AdaptiveMode bool  `json:"adaptiveMode"`
	CycleTime    int32 `json:"cycleTime"`    // 周期时长（秒），范围[30,120]
	MinGreenTime int32 `json:"minGreenTime"` // 最小绿灯时长（秒），范围[5,30]
	GreenWave    bool  `json:"greenWave"`    // 绿波协调开关
}

// ClampCycleTime 将周期时长截断到允许范围内
func ClampCycleTime(seconds int32) int32 {
	return lo.Clamp(seconds, MinCycleTime, MaxCycleTime)
}

// ClampMinGreenTime 将最小绿灯时长截断到允许范围内
func ClampMinGreenTime(seconds int32) int32 {
	return lo.Clamp(seconds, MinMinGreenTime, MaxMinGreenTime)
}

// Clamped 返回所有字段截断到合法范围后的副本
func (s Settings) Clamped() Settings {
	s.CycleTime = ClampCycleTime(s.CycleTime)
	s.MinGreenTime = ClampMinGreenTime(s.MinGreenTime)
	return s
}
