package entity

import "github.com/samber/lo"

// VehicleQueue 各进口方向的排队车辆数
// 说明：计数永不为负，只由到达模型增加、由通行模型减少
type VehicleQueue struct {
	North int32 `json:"north" yaml:"north"`
	South int32 `json:"south" yaml:"south"`
	East  int32 `json:"east" yaml:"east"`
	West  int32 `json:"west" yaml:"west"`
}

// Get 获取指定方向的排队数，未知方向返回0
func (q VehicleQueue) Get(d Direction) int32 {
	switch d {
	case DirectionNorth:
		return q.North
	case DirectionSouth:
		return q.South
	case DirectionEast:
		return q.East
	case DirectionWest:
		return q.West
	}
	return 0
}

// With 返回把指定方向设置为n后的副本，n小于0时按0处理
func (q VehicleQueue) With(d Direction, n int32) VehicleQueue {
	n = max(n, 0)
	switch d {
	case DirectionNorth:
		q.North = n
	case DirectionSouth:
		q.South = n
	case DirectionEast:
		q.East = n
	case DirectionWest:
		q.West = n
	}
	return q
}

// Sub 逐方向相减，结果下限为0
func (q VehicleQueue) Sub(o VehicleQueue) VehicleQueue {
	return lo.Reduce(Directions, func(acc VehicleQueue, d Direction, _ int) VehicleQueue {
		return acc.With(d, acc.Get(d)-o.Get(d))
	}, q)
}

// Total 全部方向排队总数
func (q VehicleQueue) Total() int32 {
	return q.North + q.South + q.East + q.West
}

// NorthSouth 南北方向负载
func (q VehicleQueue) NorthSouth() int32 {
	return q.North + q.South
}

// EastWest 东西方向负载
func (q VehicleQueue) EastWest() int32 {
	return q.East + q.West
}

// PedestrianRequests 各方向是否存在未处理的行人过街请求
type PedestrianRequests struct {
	North bool `json:"north"`
	South bool `json:"south"`
	East  bool `json:"east"`
	West  bool `json:"west"`
}

// Get 获取指定方向的请求状态
func (r PedestrianRequests) Get(d Direction) bool {
	switch d {
	case DirectionNorth:
		return r.North
	case DirectionSouth:
		return r.South
	case DirectionEast:
		return r.East
	case DirectionWest:
		return r.West
	}
	return false
}

// Toggle 返回翻转指定方向请求后的副本
func (r PedestrianRequests) Toggle(d Direction) PedestrianRequests {
	switch d {
	case DirectionNorth:
		r.North = !r.North
	case DirectionSouth:
		r.South = !r.South
	case DirectionEast:
		r.East = !r.East
	case DirectionWest:
		r.West = !r.West
	}
	return r
}

// Any 是否存在任一方向的请求
func (r PedestrianRequests) Any() bool {
	return lo.SomeBy(Directions, r.Get)
}
