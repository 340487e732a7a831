package dotproduct

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrUnknownMode 未定义的调度方式或合并方式
var ErrUnknownMode = errors.New("unknown mode")

// Schedule 分片任务的调度方式
type Schedule int

const (
	// ScheduleFullSpawn 每个分片一个goroutine，全部同时启动后统一等待
	ScheduleFullSpawn Schedule = iota
	// ScheduleBatched 按批启动goroutine，一批全部结束后再启动下一批
	ScheduleBatched
	// SchedulePool 固定数量的worker从任务channel中领取分片
	SchedulePool
)

var scheduleNames = map[Schedule]string{
	ScheduleFullSpawn: "fullspawn",
	ScheduleBatched:   "batched",
	SchedulePool:      "pool",
}

func (s Schedule) String() string {
	if n, ok := scheduleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Schedule(%d)", int(s))
}

// ParseSchedule 按名称查找调度方式
func ParseSchedule(name string) (Schedule, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range scheduleNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: schedule %q", ErrUnknownMode, name)
}

// run 按调度方式执行 n 个任务，所有任务结束后返回。
// 取消只在任务之间生效，已经开始的任务会跑完。
func (o options) run(ctx context.Context, n int, task func(i int)) error {
	switch o.schedule {
	case ScheduleFullSpawn:
		return spawn(ctx, 0, n, task)
	case ScheduleBatched:
		for lo := 0; lo < n; lo += o.batchSize {
			if err := spawn(ctx, lo, min(lo+o.batchSize, n), task); err != nil {
				return err
			}
		}
		return nil
	case SchedulePool:
		return pool(ctx, n, min(o.workers, n), task)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMode, o.schedule)
	}
}

// spawn 为 [lo, hi) 中的每个任务启动一个goroutine并等待全部完成
func spawn(ctx context.Context, lo, hi int, task func(i int)) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := lo; i < hi; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			task(i)
			return nil
		})
	}
	return g.Wait()
}

// pool 启动 workers 个worker处理jobs channel中的任务下标
func pool(ctx context.Context, n, workers int, task func(i int)) error {
	jobs := make(chan int)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				task(i)
			}
			return nil
		})
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-gctx.Done():
			break feed
		}
	}
	close(jobs)

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
