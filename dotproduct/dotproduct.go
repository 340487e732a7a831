// Package dotproduct 把两个等长序列切成 K 个分片，每个分片的点积由单独的goroutine计算，
// 最后把部分结果合并成总点积。
//
// 分片互不重叠，计算阶段没有共享写；合并阶段默认每个任务写自己的槽位，
// 也可以切换为加锁的共享累加器，用来对比锁竞争的开销。
package dotproduct

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/exp/constraints"

	"reduce-bench/partition"
)

var (
	// ErrSizeMismatch 两个序列长度不一致
	ErrSizeMismatch = partition.ErrSizeMismatch
	// ErrInvalidPartitionCount K <= 0 或 K 大于序列长度
	ErrInvalidPartitionCount = partition.ErrInvalidPartitionCount
)

// DefaultBatchSize ScheduleBatched 每批启动的goroutine数
const DefaultBatchSize = 3

type options struct {
	schedule  Schedule
	combine   Combine
	batchSize int
	workers   int
}

// Option 分片点积的参数
type Option func(*options)

// WithSchedule 设置调度方式，默认 ScheduleFullSpawn
func WithSchedule(s Schedule) Option {
	return func(o *options) {
		o.schedule = s
	}
}

// WithCombine 设置合并方式，默认 CombineSlots
func WithCombine(c Combine) Option {
	return func(o *options) {
		o.combine = c
	}
}

// WithBatchSize 设置 ScheduleBatched 的批大小，<= 0 时使用 DefaultBatchSize
func WithBatchSize(n int) Option {
	return func(o *options) {
		o.batchSize = n
	}
}

// WithWorkers 设置 SchedulePool 的worker数，<= 0 时使用 GOMAXPROCS
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.batchSize <= 0 {
		o.batchSize = DefaultBatchSize
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Dot 直接计算 a 与 b 的点积，溢出按位宽回绕
func Dot[T constraints.Integer](a, b []T) (T, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrSizeMismatch, len(a), len(b))
	}
	return dot(a, b), nil
}

func dot[T constraints.Integer](a, b []T) T {
	var sum T
	b = b[:len(a)]
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Sharded 把 a、b 按相同方式切成 k 片，分别计算各分片点积后合并。
// 长度不一致返回 ErrSizeMismatch，k 不合法返回 ErrInvalidPartitionCount，
// 两种情况都不会启动任何goroutine。
func Sharded[T constraints.Integer](ctx context.Context, k int, a, b []T, opts ...Option) (T, error) {
	o := newOptions(opts)

	partsA, partsB, err := partition.SplitPair(a, b, k)
	if err != nil {
		return 0, err
	}

	acc, err := newAccumulator[T](o.combine, len(partsA))
	if err != nil {
		return 0, err
	}

	err = o.run(ctx, len(partsA), func(i int) {
		acc.add(i, dot(partsA[i], partsB[i]))
	})
	if err != nil {
		return 0, err
	}
	return acc.total(), nil
}
