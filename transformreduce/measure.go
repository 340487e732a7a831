package transformreduce

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/timex"
	"golang.org/x/exp/constraints"

	"reduce-bench/report"
)

// SweepName 策略测量在报告中的名称
const SweepName = "Execution Policies"

// Measure 只对单次 SumOfSquares 调用计时，不包括准备工作
func Measure[T constraints.Integer](ctx context.Context, policy Policy, seq []T, opts ...Option) (report.TimedResult, error) {
	start := timex.Now()
	v, err := SumOfSquares(ctx, policy, seq, opts...)
	elapsed := timex.Since(start)
	if err != nil {
		return report.TimedResult{}, fmt.Errorf("measure %s: %w", policy, err)
	}

	return report.TimedResult{
		Label:   policy.String(),
		Value:   int64(v),
		Elapsed: elapsed,
	}, nil
}

// Sweep 依次测量 policies，为空时测量全部策略
func Sweep[T constraints.Integer](ctx context.Context, seq []T, policies []Policy, opts ...Option) (report.Sweep, error) {
	if len(policies) == 0 {
		policies = Policies
	}

	s := report.Sweep{Name: SweepName, Kind: report.KindPolicy}
	for _, p := range policies {
		r, err := Measure(ctx, p, seq, opts...)
		if err != nil {
			return s, err
		}
		s.Add(r, int(p))
	}
	return s, nil
}
