package entity

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDirection = errors.New("unknown direction")
	ErrUnknownVehicle   = errors.New("unknown emergency vehicle type")
)

// Direction 路口进口方向
type Direction string

const (
	DirectionNone  Direction = ""
	DirectionNorth Direction = "north"
	DirectionSouth Direction = "south"
	DirectionEast  Direction = "east"
	DirectionWest  Direction = "west"
)

// Directions 固定顺序的四个进口方向，所有按方向的遍历都使用该顺序
var Directions = []Direction{DirectionNorth, DirectionSouth, DirectionEast, DirectionWest}

// ParseDirection 解析方向名称
// 功能：将外部输入（命令行、配置文件）转换为方向枚举
// 参数：s-方向名称，空字符串表示未指定
// 返回：方向枚举，名称非法时返回ErrUnknownDirection
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirectionNone, DirectionNorth, DirectionSouth, DirectionEast, DirectionWest:
		return d, nil
	}
	return DirectionNone, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// IsNorthSouth 是否属于南北方向组（南北共用一组信号）
func (d Direction) IsNorthSouth() bool {
	return d == DirectionNorth || d == DirectionSouth
}

// IsEastWest 是否属于东西方向组
func (d Direction) IsEastWest() bool {
	return d == DirectionEast || d == DirectionWest
}

// LightState 信号灯颜色
type LightState string

const (
	LightOff    LightState = "off"
	LightGreen  LightState = "green"
	LightYellow LightState = "yellow"
	LightRed    LightState = "red"
)

// Moving 是否为放行或过渡状态（绿灯或黄灯）
func (s LightState) Moving() bool {
	return s == LightGreen || s == LightYellow
}

// PhasePair 南北/东西两组信号的相位组合
type PhasePair struct {
	NS LightState `json:"northSouth" yaml:"north_south"`
	EW LightState `json:"eastWest" yaml:"east_west"`
}

var (
	// 复位后的基础相位：南北红、东西绿
	BasePhase = PhasePair{NS: LightRed, EW: LightGreen}
	// 全红相位（行人相位与全网抢占）
	AllRed = PhasePair{NS: LightRed, EW: LightRed}
)

// Green 指定方向在该相位下是否为绿灯
func (p PhasePair) Green(d Direction) bool {
	switch {
	case d.IsNorthSouth():
		return p.NS == LightGreen
	case d.IsEastWest():
		return p.EW == LightGreen
	}
	return false
}

// Conflicting 两组信号是否同时处于放行/过渡状态（正常运行时不允许出现）
func (p PhasePair) Conflicting() bool {
	return p.NS.Moving() && p.EW.Moving()
}

func (p PhasePair) String() string {
	return fmt.Sprintf("NS=%s EW=%s", p.NS, p.EW)
}

// VehicleType 紧急车辆类型
type VehicleType string

const (
	VehicleNone      VehicleType = ""
	VehicleAmbulance VehicleType = "ambulance"
	VehicleFireTruck VehicleType = "fire-truck"
	VehiclePolice    VehicleType = "police"
)

// ParseVehicleType 解析紧急车辆类型，"none"与空字符串等价于取消
func ParseVehicleType(s string) (VehicleType, error) {
	switch v := VehicleType(s); v {
	case VehicleNone, VehicleAmbulance, VehicleFireTruck, VehiclePolice:
		return v, nil
	case "none":
		return VehicleNone, nil
	}
	return VehicleNone, fmt.Errorf("%w: %q", ErrUnknownVehicle, s)
}
