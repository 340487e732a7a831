package bench

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/zeromicro/go-zero/core/logx"

	"reduce-bench/config"
	"reduce-bench/dotproduct"
)

func init() {
	logx.Disable()
}

func debugConfig() config.Config {
	return config.Config{
		Size:      config.DebugSize,
		Seed:      11,
		Ks:        []int{1, 50, 100, 250},
		Schedule:  "fullspawn",
		BatchSize: 3,
		Combine:   "slots",
		Grain:     16,
		Format:    "text",
	}
}

func TestRunText(t *testing.T) {
	var out bytes.Buffer
	r, err := NewRunner(debugConfig(), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"EXECUTION POLICY: none\n",
		"EXECUTION POLICY: unsequenced policy\n",
		"====================\n\n",
		"My Algorithm\nK\t\tTime, ms\t\tResult\n",
		"250\t\t",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if n := strings.Count(text, "The smallest number: "); n != 2 {
		t.Errorf("got %d summary lines, want 2", n)
	}
}

func TestRunJSONResultsAgree(t *testing.T) {
	c := debugConfig()
	c.Format = "json"
	c.Schedule = "batched"
	c.Combine = "locked"

	var out bytes.Buffer
	r, err := NewRunner(c, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d JSON documents, want 2", len(lines))
	}

	type doc struct {
		Kind    string `json:"kind"`
		Results []struct {
			Label string `json:"label"`
			Value int64  `json:"value"`
		} `json:"results"`
	}
	for _, line := range lines {
		var d doc
		if err := sonic.UnmarshalString(line, &d); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		if len(d.Results) == 0 {
			t.Fatalf("%s sweep has no results", d.Kind)
		}
		// 同一轮内的结果值必须一致，只有耗时不同
		for _, res := range d.Results[1:] {
			if res.Value != d.Results[0].Value {
				t.Errorf("%s sweep: %s = %d, %s = %d", d.Kind, res.Label, res.Value, d.Results[0].Label, d.Results[0].Value)
			}
		}
	}
}

func TestRunInvalidK(t *testing.T) {
	c := debugConfig()
	c.Ks = dotproduct.DefaultKs // 500 > DebugSize

	var out bytes.Buffer
	r, err := NewRunner(c, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = r.Run(context.Background())
	if !errors.Is(err, dotproduct.ErrInvalidPartitionCount) {
		t.Fatalf("expected ErrInvalidPartitionCount, got: %v", err)
	}
	// 失败之前完成的测量都要输出：全部策略，以及 K = 1..250
	text := out.String()
	for _, want := range []string{
		"EXECUTION POLICY: none",
		"My Algorithm\n",
		"\n1\t\t",
		"\n250\t\t",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(text, "\n500\t\t") {
		t.Error("failed K = 500 must not be reported")
	}
	if n := strings.Count(text, "The smallest number: "); n != 2 {
		t.Errorf("got %d summary lines, want 2", n)
	}
}

func TestRunInvalidKJSON(t *testing.T) {
	c := debugConfig()
	c.Format = "json"
	c.Ks = []int{1, 50, 500}

	var out bytes.Buffer
	r, err := NewRunner(c, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Run(context.Background()); !errors.Is(err, dotproduct.ErrInvalidPartitionCount) {
		t.Fatalf("expected ErrInvalidPartitionCount, got: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d JSON documents, want 2", len(lines))
	}
	var d struct {
		Kind    string `json:"kind"`
		Results []struct {
			Label string `json:"label"`
		} `json:"results"`
	}
	if err := sonic.UnmarshalString(lines[1], &d); err != nil {
		t.Fatalf("decode %q: %v", lines[1], err)
	}
	if d.Kind != "partition" || len(d.Results) != 2 || d.Results[1].Label != "K = 50" {
		t.Errorf("unexpected partial sweep: %+v", d)
	}
}

func TestNewRunnerRejectsInvalidConfig(t *testing.T) {
	c := debugConfig()
	c.Schedule = "stealing"
	if _, err := NewRunner(c, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown schedule")
	}
}
