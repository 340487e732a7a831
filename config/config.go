// Package config 定义基准测试的配置项，由 go-zero conf 从 yaml 文件加载。
package config

import (
	"errors"
	"fmt"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"

	"reduce-bench/dotproduct"
	"reduce-bench/transformreduce"
)

// DebugSize 调试时使用的小规模序列长度
const DebugSize = 300

// Config 基准测试配置
type Config struct {
	// Size 序列长度
	Size int `json:",default=300000000"`

	// Seed 随机种子，0表示每次运行都不同
	Seed uint64 `json:",optional"`

	// Policies 参与测量的执行策略，为空时测量全部
	Policies []string `json:",optional"`

	// Ks 分片测量使用的分片数
	Ks []int `json:",default=[1,50,100,250,500]"`

	Schedule  string `json:",default=fullspawn,options=fullspawn|batched|pool"`
	BatchSize int    `json:",default=3"`
	Combine   string `json:",default=slots,options=slots|locked|spin|padded"`

	// Workers 并行策略与pool调度的worker数，0表示GOMAXPROCS
	Workers int `json:",optional"`

	Grain  int    `json:",default=4096"`
	Format string `json:",default=text,options=text|json"`

	// Diagnostics 开启gops agent，便于观察长时间运行的进程
	Diagnostics bool `json:",optional"`

	Log logx.LogConf
}

// Load 加载并校验配置文件
func Load(path string) (Config, error) {
	var c Config
	if err := conf.Load(path, &c); err != nil {
		return c, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate 检查conf标签无法表达的约束
func (c Config) Validate() error {
	var errs []error
	if c.Size <= 0 {
		errs = append(errs, fmt.Errorf("Size must be positive, got %d", c.Size))
	}
	if len(c.Ks) == 0 {
		errs = append(errs, errors.New("Ks must not be empty"))
	}
	for _, k := range c.Ks {
		if k <= 0 {
			errs = append(errs, fmt.Errorf("Ks contains non-positive value %d", k))
		}
	}
	if c.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("BatchSize must be positive, got %d", c.BatchSize))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("Workers must not be negative, got %d", c.Workers))
	}
	if _, err := c.TransformReducePolicies(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.DotProductOptions(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TransformReducePolicies 把策略名称解析为 transformreduce.Policy
func (c Config) TransformReducePolicies() ([]transformreduce.Policy, error) {
	policies := make([]transformreduce.Policy, 0, len(c.Policies))
	for _, name := range c.Policies {
		p, err := transformreduce.ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

// TransformReduceOptions 并行策略的参数
func (c Config) TransformReduceOptions() []transformreduce.Option {
	return []transformreduce.Option{
		transformreduce.WithWorkers(c.Workers),
		transformreduce.WithGrain(c.Grain),
	}
}

// DotProductOptions 分片点积的参数
func (c Config) DotProductOptions() ([]dotproduct.Option, error) {
	schedule, err := dotproduct.ParseSchedule(c.Schedule)
	if err != nil {
		return nil, err
	}
	combine, err := dotproduct.ParseCombine(c.Combine)
	if err != nil {
		return nil, err
	}
	return []dotproduct.Option{
		dotproduct.WithSchedule(schedule),
		dotproduct.WithCombine(combine),
		dotproduct.WithBatchSize(c.BatchSize),
		dotproduct.WithWorkers(c.Workers),
	}, nil
}
