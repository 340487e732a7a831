// Package bench 串起两轮测量：生成一次随机序列，先按执行策略测量平方和，
// 再按分片数K测量分片点积，每轮结束后交给 report.Writer 输出。
package bench

import (
	"context"
	"fmt"
	"io"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/timex"

	"reduce-bench/config"
	"reduce-bench/dotproduct"
	"reduce-bench/report"
	"reduce-bench/sequence"
	"reduce-bench/transformreduce"
)

// Runner 按配置执行全部测量
type Runner struct {
	c      config.Config
	writer report.Writer
}

// NewRunner 根据配置创建Runner，输出写到 out
func NewRunner(c config.Config, out io.Writer) (*Runner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var w report.Writer
	switch c.Format {
	case "json":
		w = report.NewJSONWriter(out)
	default:
		w = report.NewTextWriter(out)
	}
	return &Runner{c: c, writer: w}, nil
}

// Run 生成序列并依次执行两轮测量，任一测量失败即中止
func (r *Runner) Run(ctx context.Context) error {
	seq := r.generate()

	if err := r.runPolicies(ctx, seq); err != nil {
		return err
	}
	return r.runPartitions(ctx, seq)
}

func (r *Runner) generate() []int32 {
	var opts []sequence.Option
	if r.c.Seed != 0 {
		opts = append(opts, sequence.WithSeed(r.c.Seed))
	}

	start := timex.Now()
	seq := sequence.Generate(r.c.Size, opts...)
	logx.Infof("generated %d elements in %s", len(seq), timex.ReprOfDuration(timex.Since(start)))
	return seq
}

func (r *Runner) runPolicies(ctx context.Context, seq []int32) error {
	policies, err := r.c.TransformReducePolicies()
	if err != nil {
		return err
	}

	logx.Infof("policy sweep started, workers=%d grain=%d", r.c.Workers, r.c.Grain)
	s, err := transformreduce.Sweep(ctx, seq, policies, r.c.TransformReduceOptions()...)
	if err != nil {
		logx.Errorf("policy sweep aborted: %v", err)
		r.writePartial(s)
		return fmt.Errorf("policy sweep: %w", err)
	}
	return r.writer.WriteSweep(s)
}

func (r *Runner) runPartitions(ctx context.Context, seq []int32) error {
	opts, err := r.c.DotProductOptions()
	if err != nil {
		return err
	}

	logx.Infof("partition sweep started, ks=%v schedule=%s combine=%s", r.c.Ks, r.c.Schedule, r.c.Combine)
	s, err := dotproduct.Sweep(ctx, r.c.Ks, seq, seq, opts...)
	if err != nil {
		logx.Errorf("partition sweep aborted: %v", err)
		r.writePartial(s)
		return fmt.Errorf("partition sweep: %w", err)
	}
	return r.writer.WriteSweep(s)
}

// writePartial 测量中途失败时，已完成的结果照常输出
func (r *Runner) writePartial(s report.Sweep) {
	if len(s.Results) == 0 {
		return
	}
	if err := r.writer.WriteSweep(s); err != nil {
		logx.Errorf("write partial sweep %q: %v", s.Name, err)
	}
}
