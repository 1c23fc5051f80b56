package container

// Ring 定长先进先出环形窗口
// 功能：保存最近Cap个元素，写满后新元素挤掉最旧的元素
// 说明：值语义使用时需通过Clone复制，避免多个副本共享底层数组
type Ring[T any] struct {
	data []T
	cap  int
}

// NewRing 创建环形窗口
// 参数：capacity-容量，小于1时按1处理
// 返回：空的环形窗口
func NewRing[T any](capacity int) Ring[T] {
	capacity = max(capacity, 1)
	return Ring[T]{data: make([]T, 0, capacity), cap: capacity}
}

// Len 当前元素数量
func (r Ring[T]) Len() int {
	return len(r.data)
}

// Cap 容量
func (r Ring[T]) Cap() int {
	return r.cap
}

// Push 追加元素，超出容量时静默丢弃最旧的元素
func (r *Ring[T]) Push(v T) {
	if r.cap == 0 {
		*r = NewRing[T](1)
	}
	if len(r.data) == r.cap {
		copy(r.data, r.data[1:])
		r.data[len(r.data)-1] = v
		return
	}
	r.data = append(r.data, v)
}

// Last 获取最近n个元素（从旧到新），n超过长度时返回全部
func (r Ring[T]) Last(n int) []T {
	if n <= 0 {
		return []T{}
	}
	start := max(len(r.data)-n, 0)
	out := make([]T, len(r.data)-start)
	copy(out, r.data[start:])
	return out
}

// Slice 获取全部元素的副本（从旧到新）
func (r Ring[T]) Slice() []T {
	return r.Last(len(r.data))
}

// Clone 深复制
func (r Ring[T]) Clone() Ring[T] {
	c := NewRing[T](r.cap)
	c.data = append(c.data, r.data...)
	return c
}
