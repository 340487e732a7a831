package transformreduce

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPolicy 未定义的执行策略
var ErrUnknownPolicy = errors.New("unknown execution policy")

// Policy 执行策略：是否并行、元素处理顺序是否有保证
type Policy int

const (
	// PolicyNone 不指定策略，交给库的默认实现
	PolicyNone Policy = iota
	// PolicySequenced 单goroutine，严格从左到右
	PolicySequenced
	// PolicyParallel 固定数量的worker各算一段，按段顺序合并
	PolicyParallel
	// PolicyParallelUnsequenced 多worker计算，部分结果按到达顺序合并
	PolicyParallelUnsequenced
	// PolicyUnsequenced 单goroutine，多个独立累加器交错执行
	PolicyUnsequenced
)

// Policies 测量顺序
var Policies = []Policy{
	PolicyNone,
	PolicySequenced,
	PolicyParallel,
	PolicyParallelUnsequenced,
	PolicyUnsequenced,
}

var labels = map[Policy]string{
	PolicyNone:                "none",
	PolicySequenced:           "sequenced policy",
	PolicyParallel:            "parallel policy",
	PolicyParallelUnsequenced: "parallel unsequenced policy",
	PolicyUnsequenced:         "unsequenced policy",
}

func (p Policy) String() string {
	if l, ok := labels[p]; ok {
		return l
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy 按标签查找策略，忽略大小写，末尾的 " policy" 可省略
func ParsePolicy(s string) (Policy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Policies {
		l := labels[p]
		if s == l || s+" policy" == l {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}
