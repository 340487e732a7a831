package dotproduct

import (
	"fmt"
	"strings"
	"sync"

	"github.com/zeromicro/go-zero/core/syncx"
	"golang.org/x/exp/constraints"
)

// Combine 部分结果的合并方式
type Combine int

const (
	// CombineSlots 每个任务写入自己的槽位，全部结束后单线程求和
	CombineSlots Combine = iota
	// CombineLocked 共享累加器，用互斥锁保护
	CombineLocked
	// CombineSpin 共享累加器，用自旋锁保护
	CombineSpin
	// CombinePadded 与 CombineSlots 相同，但每个槽位独占一个 cache line
	CombinePadded
)

// cacheLineSize 现代CPU的cache line通常为64字节
const cacheLineSize = 64

var combineNames = map[Combine]string{
	CombineSlots:  "slots",
	CombineLocked: "locked",
	CombineSpin:   "spin",
	CombinePadded: "padded",
}

func (c Combine) String() string {
	if n, ok := combineNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Combine(%d)", int(c))
}

// ParseCombine 按名称查找合并方式
func ParseCombine(name string) (Combine, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range combineNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: combine %q", ErrUnknownMode, name)
}

type accumulator[T constraints.Integer] interface {
	add(i int, v T)
	total() T
}

func newAccumulator[T constraints.Integer](c Combine, n int) (accumulator[T], error) {
	switch c {
	case CombineSlots:
		return &slots[T]{partials: make([]T, n)}, nil
	case CombineLocked:
		return &locked[T]{}, nil
	case CombineSpin:
		return &spin[T]{}, nil
	case CombinePadded:
		return &padded[T]{partials: make([]paddedSlot[T], n)}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, c)
	}
}

type slots[T constraints.Integer] struct {
	partials []T
}

func (s *slots[T]) add(i int, v T) { s.partials[i] = v }

func (s *slots[T]) total() T {
	var sum T
	for _, p := range s.partials {
		sum += p
	}
	return sum
}

// paddedSlot 相邻槽位的值至少相隔一个 cache line，写入时不会互相使对方缓存失效。
// 泛型下拿不到 T 的常量大小，直接填充一整行。
type paddedSlot[T constraints.Integer] struct {
	v T
	_ [cacheLineSize]byte
}

type padded[T constraints.Integer] struct {
	partials []paddedSlot[T]
}

func (p *padded[T]) add(i int, v T) { p.partials[i].v = v }

func (p *padded[T]) total() T {
	var sum T
	for _, s := range p.partials {
		sum += s.v
	}
	return sum
}

type locked[T constraints.Integer] struct {
	mu  sync.Mutex
	sum T
}

func (l *locked[T]) add(_ int, v T) {
	l.mu.Lock()
	l.sum += v
	l.mu.Unlock()
}

func (l *locked[T]) total() T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sum
}

type spin[T constraints.Integer] struct {
	lock syncx.SpinLock
	sum  T
}

func (s *spin[T]) add(_ int, v T) {
	s.lock.Lock()
	s.sum += v
	s.lock.Unlock()
}

func (s *spin[T]) total() T {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.sum
}
