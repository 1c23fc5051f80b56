package junction

import (
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/entity"
	"github.com/tsinghua-fib-lab/agentsociety-signal-sim/utils/config"
)

// Coordination 次级路口协调标签，仅用于展示，不影响配时
type Coordination string

const (
	CoordinationSynchronized Coordination = "synchronized"
	CoordinationDelayed      Coordination = "delayed"
	CoordinationIndependent  Coordination = "independent"
)

// Tag 按路口序号与绿波开关确定协调标签
// 算法说明：序号0、1在绿波开启时为同步，序号2为延迟，其余为独立
func Tag(index int, greenWave bool) Coordination {
	switch {
	case greenWave && index < 2:
		return CoordinationSynchronized
	case index == 2:
		return CoordinationDelayed
	default:
		return CoordinationIndependent
	}
}

// Record 次级路口
// 功能：记录路口的相位、车辆数与协调标签
// 说明：车辆数按简化规则独立演化，与主路口排队无关
type Record struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Index        int              `json:"index"`
	Phase        entity.PhasePair `json:"phase"`
	VehicleCount int32            `json:"vehicleCount"`
	Coordination Coordination     `json:"coordination"`
}

// newRecord 根据配置创建次级路口
func newRecord(index int, base config.Intersection, greenWave bool) Record {
	phase := base.Phase
	if phase == (entity.PhasePair{}) {
		phase = entity.BasePhase
	}
	return Record{
		ID:           base.ID,
		Name:         base.Name,
		Index:        index,
		Phase:        phase,
		VehicleCount: max(base.VehicleCount, 0),
		Coordination: Tag(index, greenWave),
	}
}
