package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/zeromicro/go-zero/core/logx"

	"reduce-bench/bench"
	"reduce-bench/config"
)

var configFile = flag.String("f", "etc/bench.yaml", "the config file")

func main() {
	flag.Parse()

	c, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logx.MustSetup(c.Log)
	defer logx.Close()

	if err := run(c); err != nil {
		logx.Error(err)
		logx.Close()
		os.Exit(1)
	}
}

func run(c config.Config) error {
	if c.Diagnostics {
		// 规模为3亿时一次运行要几十秒，可用 gops stack/memstats 观察进程
		if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
			return fmt.Errorf("start gops agent: %w", err)
		}
		defer agent.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := bench.NewRunner(c, os.Stdout)
	if err != nil {
		return err
	}
	return r.Run(ctx)
}
