// Package sequence 生成测试用的随机整数序列。
package sequence

import (
	"math/rand/v2"

	"github.com/zeromicro/go-zero/core/threading"
)

const (
	// MinValue 元素取值下界（含）
	MinValue = 1
	// MaxValue 元素取值上界（含）
	MaxValue = 1_000_000

	// blockSize 并行填充时每个goroutine负责的元素个数
	blockSize = 1 << 20
)

type options struct {
	seed   uint64
	seeded bool
}

// Option 生成选项
type Option func(*options)

// WithSeed 固定随机种子，相同种子生成相同序列
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// Generate 生成 n 个在 [MinValue, MaxValue] 上均匀分布的整数。
// 未指定种子时每次调用结果都不同。
func Generate(n int, opts ...Option) []int32 {
	if n <= 0 {
		return []int32{}
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		o.seed = rand.Uint64()
	}

	seq := make([]int32, n)
	// 每个块使用由种子和块序号派生的独立PCG，结果与并发度无关
	group := threading.NewRoutineGroup()
	for block, lo := uint64(0), 0; lo < n; block, lo = block+1, lo+blockSize {
		hi := min(lo+blockSize, n)
		src := rand.New(rand.NewPCG(o.seed, block))
		group.Run(func() {
			fill(seq[lo:hi], src)
		})
	}
	group.Wait()

	return seq
}

func fill(dst []int32, r *rand.Rand) {
	for i := range dst {
		dst[i] = MinValue + r.Int32N(MaxValue-MinValue+1)
	}
}
