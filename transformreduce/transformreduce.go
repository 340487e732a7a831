// Package transformreduce 在不同执行策略下计算 transform-reduce（先map再fold）。
//
// 所有策略对同一输入给出相同结果：整数加法按定长位宽回绕，满足结合律和交换律，
// 因此无论分段方式和合并顺序如何，溢出后的值也一致。
// 并行策略没有依赖运行时的调度器，而是显式地把序列分段交给固定数量的worker。
package transformreduce

import (
	"context"
	"fmt"
	"runtime"

	"github.com/samber/lo"
	"github.com/zeromicro/go-zero/core/mr"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"

	"reduce-bench/partition"
)

// DefaultGrain 并行策略中每段的最小元素个数，序列太短时不再细分
const DefaultGrain = 4096

type options struct {
	workers int
	grain   int
}

// Option 并行策略的参数
type Option func(*options)

// WithWorkers 设置worker数量，<= 0 时使用 GOMAXPROCS
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithGrain 设置每段最小元素个数，<= 0 时使用 DefaultGrain
func WithGrain(n int) Option {
	return func(o *options) {
		o.grain = n
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.grain <= 0 {
		o.grain = DefaultGrain
	}
	return o
}

// chunks 按worker数与最小段长计算分段数，至少为1
func (o options) chunks(n, perWorker int) int {
	c := min(o.workers*perWorker, n/o.grain)
	return max(c, 1)
}

// TransformReduce 对 seq 的每个元素做 transform，再用 reduce 从 init 开始折叠。
// 并行策略要求 reduce 满足结合律，PolicyParallelUnsequenced 和 PolicyUnsequenced
// 还要求满足交换律。
func TransformReduce[T constraints.Integer](
	ctx context.Context,
	policy Policy,
	seq []T,
	init T,
	reduce func(T, T) T,
	transform func(T) T,
	opts ...Option,
) (T, error) {
	switch policy {
	case PolicyNone:
		return lo.Reduce(seq, func(acc T, v T, _ int) T {
			return reduce(acc, transform(v))
		}, init), nil
	case PolicySequenced:
		return sequenced(seq, init, reduce, transform), nil
	case PolicyParallel:
		return parallel(ctx, seq, init, reduce, transform, newOptions(opts))
	case PolicyParallelUnsequenced:
		return parallelUnsequenced(ctx, seq, init, reduce, transform, newOptions(opts))
	case PolicyUnsequenced:
		return unsequenced(seq, init, reduce, transform), nil
	default:
		var zero T
		return zero, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(policy))
	}
}

// SumOfSquares 每个元素平方后求和，初值为0
func SumOfSquares[T constraints.Integer](ctx context.Context, policy Policy, seq []T, opts ...Option) (T, error) {
	return TransformReduce(ctx, policy, seq, 0, add[T], square[T], opts...)
}

func add[T constraints.Integer](a, b T) T { return a + b }

func square[T constraints.Integer](v T) T { return v * v }

func sequenced[T constraints.Integer](seq []T, init T, reduce func(T, T) T, transform func(T) T) T {
	acc := init
	for _, v := range seq {
		acc = reduce(acc, transform(v))
	}
	return acc
}

// fold 计算非空段的局部结果，不掺入 init，避免 init 被重复计入
func fold[T constraints.Integer](seg []T, reduce func(T, T) T, transform func(T) T) T {
	acc := transform(seg[0])
	for _, v := range seg[1:] {
		acc = reduce(acc, transform(v))
	}
	return acc
}

func parallel[T constraints.Integer](
	ctx context.Context,
	seq []T,
	init T,
	reduce func(T, T) T,
	transform func(T) T,
	o options,
) (T, error) {
	if len(seq) == 0 {
		return init, nil
	}

	parts, err := partition.Split(seq, o.chunks(len(seq), 1))
	if err != nil {
		return init, err
	}

	// 每个worker只写自己的槽位，无需加锁
	partials := make([]T, len(parts))
	g, ctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partials[i] = fold(part, reduce, transform)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return init, err
	}

	acc := init
	for _, p := range partials {
		acc = reduce(acc, p)
	}
	return acc, nil
}

func parallelUnsequenced[T constraints.Integer](
	ctx context.Context,
	seq []T,
	init T,
	reduce func(T, T) T,
	transform func(T) T,
	o options,
) (T, error) {
	if len(seq) == 0 {
		return init, nil
	}

	// 段数多于worker数，让部分结果的到达顺序真正打乱
	ranges, err := partition.Ranges(len(seq), o.chunks(len(seq), 4))
	if err != nil {
		return init, err
	}

	if err := ctx.Err(); err != nil {
		return init, err
	}

	v, err := mr.MapReduce[partition.Range, T, T](func(source chan<- partition.Range) {
		for _, r := range ranges {
			source <- r
		}
	}, func(r partition.Range, writer mr.Writer[T], cancel func(error)) {
		if err := ctx.Err(); err != nil {
			cancel(err)
			return
		}
		writer.Write(fold(seq[r.Lo:r.Hi], reduce, transform))
	}, func(pipe <-chan T, writer mr.Writer[T], cancel func(error)) {
		acc := init
		for p := range pipe {
			acc = reduce(acc, p)
		}
		writer.Write(acc)
	}, mr.WithWorkers(o.workers), mr.WithContext(ctx))
	if err != nil {
		// mr 在 ctx 结束时统一报 DeadlineExceeded，这里还原为 ctx 自己的错误
		if ctxErr := ctx.Err(); ctxErr != nil {
			return init, ctxErr
		}
		return init, err
	}
	return v, nil
}

// unsequenced 四个累加器交错推进，彼此没有数据依赖，便于CPU流水线并行
func unsequenced[T constraints.Integer](seq []T, init T, reduce func(T, T) T, transform func(T) T) T {
	const lanes = 4
	if len(seq) < lanes {
		return sequenced(seq, init, reduce, transform)
	}

	a0, a1, a2, a3 := transform(seq[0]), transform(seq[1]), transform(seq[2]), transform(seq[3])
	i := lanes
	for ; i+lanes <= len(seq); i += lanes {
		a0 = reduce(a0, transform(seq[i]))
		a1 = reduce(a1, transform(seq[i+1]))
		a2 = reduce(a2, transform(seq[i+2]))
		a3 = reduce(a3, transform(seq[i+3]))
	}

	acc := reduce(init, reduce(reduce(a0, a1), reduce(a2, a3)))
	for ; i < len(seq); i++ {
		acc = reduce(acc, transform(seq[i]))
	}
	return acc
}
