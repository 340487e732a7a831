package dotproduct

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/timex"
	"golang.org/x/exp/constraints"

	"reduce-bench/report"
)

// SweepName 分片测量在报告中的名称
const SweepName = "My Algorithm"

// DefaultKs 默认测量的分片数
var DefaultKs = []int{1, 50, 100, 250, 500}

// Measure 对一次 Sharded 调用计时，包含切分、启动goroutine和等待的开销
func Measure[T constraints.Integer](ctx context.Context, k int, a, b []T, opts ...Option) (report.TimedResult, error) {
	start := timex.Now()
	v, err := Sharded(ctx, k, a, b, opts...)
	elapsed := timex.Since(start)
	if err != nil {
		return report.TimedResult{}, fmt.Errorf("measure K = %d: %w", k, err)
	}

	return report.TimedResult{
		Label:   fmt.Sprintf("K = %d", k),
		Value:   int64(v),
		Elapsed: elapsed,
	}, nil
}

// Sweep 依次测量 ks 中的每个分片数，ks 为空时使用 DefaultKs。
// 任一测量失败立即返回，已完成的结果保留在返回的 Sweep 中。
func Sweep[T constraints.Integer](ctx context.Context, ks []int, a, b []T, opts ...Option) (report.Sweep, error) {
	if len(ks) == 0 {
		ks = DefaultKs
	}

	s := report.Sweep{Name: SweepName, Kind: report.KindPartition}
	for _, k := range ks {
		r, err := Measure(ctx, k, a, b, opts...)
		if err != nil {
			return s, err
		}
		s.Add(r, k)
	}
	return s, nil
}
