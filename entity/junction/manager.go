package junction

import (
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/utils/config"
)

// OffsetStep 相邻次级路口之间的时间偏移（秒）
const OffsetStep int32 = 20

// Sampler 随机源，返回[0,1)上的均匀分布
type Sampler interface {
	Float64() float64
}

// Manager 多路口协调器
// 功能：以共享时钟和按序号的时间偏移计算各次级路口的相位，并演化其车辆数
// 说明：无内部状态，所有方法返回新的路口列表
type Manager struct {
	base []config.Intersection
}

// NewManager 创建多路口协调器
// 参数：base-次级路口初始配置
// 返回：协调器实例
func NewManager(base []config.Intersection) *Manager {
	return &Manager{base: base}
}

// Init 按配置生成初始路口列表
// 功能：创建与复位时调用，恢复配置中的初始相位与车辆数
// 参数：greenWave-绿波开关，用于初始协调标签
// 返回：初始路口列表
func (m *Manager) Init(greenWave bool) []Record {
	return lo.Map(m.base, func(in config.Intersection, i int) Record {
		return newRecord(i, in, greenWave)
	})
}

// Drift 演化次级路口车辆数
// 功能：每个路口独立抽样 max(0, n + floor(rand[0,2)*impact) - 1)
// 参数：records-当前路口列表，impact-天气系数，sampler-随机源
// 返回：新的路口列表
func (m *Manager) Drift(records []Record, impact float64, sampler Sampler) []Record {
	return lo.Map(records, func(r Record, _ int) Record {
		r.VehicleCount = max(0, r.VehicleCount+int32(math.Floor(sampler.Float64()*2*impact))-1)
		return r
	})
}

// Update 计算次级路口相位
// 功能：根据共享时钟计算每个路口的相位与协调标签
// 参数：records-当前路口列表，tick-经过的步数，s-信控设置，overridden-主路口是否处于紧急或行人抢占
// 返回：新的路口列表
// 算法说明：
// 1. 主路口被抢占时，所有次级路口全红（全网抢占）
// 2. 否则路口i的周期位置为 (tick + i*20) mod (cycleTime + 6)，按均分配时的四区间规则取相位
// 3. 次级路口不使用自适应配时
func (m *Manager) Update(records []Record, tick int32, s entity.Settings, overridden bool) []Record {
	timing := trafficlight.EvenSplit(s.CycleTime)
	return lo.Map(records, func(r Record, _ int) Record {
		if overridden {
			r.Phase = entity.AllRed
		} else {
			r.Phase = timing.Evaluate(tick + int32(r.Index)*OffsetStep).Phase
		}
		r.Coordination = Tag(r.Index, s.GreenWave)
		return r
	})
}
