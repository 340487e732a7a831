// Package partition 把序列切成 K 个连续且互不重叠的分片。
//
// 切分规则：partSize = n/k，remainder = n%k，前 remainder 个分片各多分一个元素。
// 分片只是原序列上的子切片视图，不会复制数据。
package partition

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeMismatch 两个输入序列长度不一致
	ErrSizeMismatch = errors.New("sequences have different sizes")
	// ErrInvalidPartitionCount K <= 0 或 K 大于序列长度
	ErrInvalidPartitionCount = errors.New("invalid partition count")
)

// Range 半开区间 [Lo, Hi)
type Range struct {
	Lo int
	Hi int
}

// Len 区间长度
func (r Range) Len() int { return r.Hi - r.Lo }

// Ranges 计算长度为 n 的序列切成 k 份后的各分片区间
func Ranges(n, k int) ([]Range, error) {
	if k <= 0 || k > n {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrInvalidPartitionCount, k, n)
	}

	partSize, remainder := n/k, n%k
	ranges := make([]Range, 0, k)
	lo := 0
	for i := 0; i < k; i++ {
		size := partSize
		if i < remainder {
			size++
		}
		// k <= n 时不会出现空分片，保留判断以防规则变化
		if size == 0 {
			continue
		}
		ranges = append(ranges, Range{Lo: lo, Hi: lo + size})
		lo += size
	}
	return ranges, nil
}

// Split 把 s 切成 k 个子切片
func Split[T any](s []T, k int) ([][]T, error) {
	ranges, err := Ranges(len(s), k)
	if err != nil {
		return nil, err
	}
	return slice(s, ranges), nil
}

// SplitPair 用同一组区间切分两个等长序列，保证下标相同的分片一一对应
func SplitPair[T any](a, b []T, k int) ([][]T, [][]T, error) {
	if len(a) != len(b) {
		return nil, nil, fmt.Errorf("%w: %d != %d", ErrSizeMismatch, len(a), len(b))
	}
	ranges, err := Ranges(len(a), k)
	if err != nil {
		return nil, nil, err
	}
	return slice(a, ranges), slice(b, ranges), nil
}

func slice[T any](s []T, ranges []Range) [][]T {
	parts := make([][]T, len(ranges))
	for i, r := range ranges {
		// 限制容量，避免分片上的 append 覆盖相邻分片
		parts[i] = s[r.Lo:r.Hi:r.Hi]
	}
	return parts
}
