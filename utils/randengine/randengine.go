// 随机数引擎，包装了golang.org/x/exp/rand，为到达模型提供可复现的随机源
package randengine

import (
	"flag"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：按种子生成可复现的随机序列，供车辆到达与次级路口车流漂移使用
// 说明：引擎步进是单线程的，方法均不加锁
type Engine struct {
	*rand.Rand        // 底层随机数生成器
	seed       uint64 // 实际种子（含偏移量）
}

// New 创建随机数引擎
// 功能：以seed+rand.seed_offset为种子初始化引擎
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改配置的情况下调整随机数序列
func New(seed uint64) *Engine {
	s := seed + *seedOffset
	return &Engine{Rand: rand.New(rand.NewSource(s)), seed: s}
}

// Seed 实际使用的种子（含偏移量）
func (e *Engine) Seed() uint64 {
	return e.seed
}

// Reseed 以初始种子重置随机序列
// 说明：仿真复位时调用，使复位后的运行与首次运行得到相同的随机序列
func (e *Engine) Reseed() {
	e.Rand.Seed(e.seed)
}
