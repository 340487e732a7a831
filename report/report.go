// Package report 保存计时结果，找出最快的一项，并把每轮测量输出到控制台或 JSON。
package report

import (
	"fmt"
	"time"
)

// TimedResult 一次测量：标签、计算结果与耗时
type TimedResult struct {
	Label   string
	Value   int64
	Elapsed time.Duration
}

// Millis 以毫秒为单位的耗时（保留小数）
func (r TimedResult) Millis() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// Fastest 线性扫描找出耗时最短的结果，耗时相同时取最先出现的。
// results 为空时返回 false。
func Fastest(results []TimedResult) (TimedResult, bool) {
	if len(results) == 0 {
		return TimedResult{}, false
	}

	fastest := results[0]
	for _, r := range results[1:] {
		if r.Elapsed < fastest.Elapsed {
			fastest = r
		}
	}
	return fastest, true
}

// Kind 区分两类测量，文本输出的版式不同
type Kind int

const (
	// KindPolicy 按执行策略测量 transform-reduce
	KindPolicy Kind = iota
	// KindPartition 按分片数 K 测量分片点积
	KindPartition
)

func (k Kind) String() string {
	switch k {
	case KindPolicy:
		return "policy"
	case KindPartition:
		return "partition"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sweep 一轮测量的全部结果，按执行顺序排列
type Sweep struct {
	Name    string
	Kind    Kind
	Results []TimedResult
	// Params 与 Results 一一对应的参数（分片测量中是 K），可为空
	Params []int
}

// Fastest 本轮最快的一项
func (s Sweep) Fastest() (TimedResult, bool) {
	return Fastest(s.Results)
}

// Add 追加一条结果及其参数
func (s *Sweep) Add(r TimedResult, param int) {
	s.Results = append(s.Results, r)
	s.Params = append(s.Params, param)
}

// Writer 输出一轮测量
type Writer interface {
	WriteSweep(s Sweep) error
}
