package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/utils/config"
)

// Clock 仿真时钟
// 功能：记录仿真推进的步数与对应的仿真时间，一个逻辑步对应一秒仿真时间
// 说明：步数由引擎在每次完整的更新后推进，复位时回到起始步
type Clock struct {
	DT         float64 // 每步对应的仿真时间（秒）
	Interval   float64 // 驱动一步的真实时间间隔（秒）
	START_STEP int32   // 起始步
	END_STEP   int32   // 结束步，模拟区间[START, END)，0表示不限

	T            float64 // 当前时间（秒）
	InternalStep int32   // 当前步数
}

// New 根据配置创建新的时钟实例
// 功能：根据控制步配置初始化时钟信息
// 参数：stepConfig-控制步配置，包含起始步、总步数与真实时间间隔
// 返回：初始化完成的时钟实例
func New(stepConfig config.ControlStep) *Clock {
	c := &Clock{
		DT:         1,
		Interval:   stepConfig.Interval,
		START_STEP: stepConfig.Start,
	}
	if stepConfig.Total > 0 {
		c.END_STEP = stepConfig.Start + stepConfig.Total
	}
	c.Init()
	return c
}

// Init 初始化时钟状态
// 说明：重置步数为起始步，重新计算当前时间
func (c *Clock) Init() {
	c.Sync(c.START_STEP)
}

// Sync 将时钟对齐到指定步数
func (c *Clock) Sync(step int32) {
	c.InternalStep = step
	c.T = float64(c.InternalStep) * c.DT
}

// Advance 推进一步
func (c *Clock) Advance() {
	c.Sync(c.InternalStep + 1)
}

// Done 是否已到达结束步
func (c *Clock) Done() bool {
	return c.END_STEP > 0 && c.InternalStep >= c.END_STEP
}

// String 获取时钟的字符串表示
// 功能：将当前时间格式化为可读的字符串
// 返回：格式化的时间字符串（HH:MM:SS）
func (c *Clock) String() string {
	h, m, s := c.GetHourMinuteSecond()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, int(s))
}

// GetHourMinuteSecond 获取当前时间的小时、分钟、秒
// 返回：小时、分钟、秒（秒为浮点数，支持亚秒级精度）
func (c *Clock) GetHourMinuteSecond() (int, int, float64) {
	hour := int(c.T) / 3600
	minute := int(c.T) % 3600 / 60
	second := c.T - float64(hour*3600+minute*60)
	return hour, minute, second
}

// FormatElapsed 将经过的秒数格式化为m:ss（面板计时器格式）
func FormatElapsed(seconds int32) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
