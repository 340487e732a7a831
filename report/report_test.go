package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
)

func TestFastest(t *testing.T) {
	tests := []struct {
		name    string
		results []TimedResult
		want    string
		ok      bool
	}{
		{name: "empty", ok: false},
		{
			name:    "single",
			results: []TimedResult{{Label: "a", Elapsed: time.Second}},
			want:    "a",
			ok:      true,
		},
		{
			name: "minimum in the middle",
			results: []TimedResult{
				{Label: "a", Elapsed: 3 * time.Millisecond},
				{Label: "b", Elapsed: time.Millisecond},
				{Label: "c", Elapsed: 2 * time.Millisecond},
			},
			want: "b",
			ok:   true,
		},
		{
			name: "tie goes to first occurrence",
			results: []TimedResult{
				{Label: "a", Elapsed: 5 * time.Millisecond},
				{Label: "b", Elapsed: 2 * time.Millisecond},
				{Label: "c", Elapsed: 2 * time.Millisecond},
			},
			want: "b",
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Fastest(tt.results)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got.Label != tt.want {
				t.Errorf("Fastest = %q, want %q", got.Label, tt.want)
			}
		})
	}
}

func TestMillis(t *testing.T) {
	r := TimedResult{Elapsed: 1500 * time.Microsecond}
	if r.Millis() != 1.5 {
		t.Errorf("Millis() = %v, want 1.5", r.Millis())
	}
}

func TestTextWriterPolicy(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf)

	s := Sweep{Name: "policies", Kind: KindPolicy}
	s.Add(TimedResult{Label: "none", Value: 14, Elapsed: 2 * time.Millisecond}, 0)
	s.Add(TimedResult{Label: "parallel policy", Value: 14, Elapsed: time.Millisecond}, 0)
	if err := w.WriteSweep(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "EXECUTION POLICY: none\n" +
		"Result: 14\n" +
		"Execution time: 2 ms\n\n" +
		"EXECUTION POLICY: parallel policy\n" +
		"Result: 14\n" +
		"Execution time: 1 ms\n\n" +
		"The smallest number: parallel policy for\t1 ms\n"
	if buf.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestTextWriterSeparatesSweeps(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf)

	if err := w.WriteSweep(Sweep{Name: "policies", Kind: KindPolicy}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := Sweep{Name: "My Algorithm", Kind: KindPartition}
	s.Add(TimedResult{Label: "K = 1", Value: 10, Elapsed: 4 * time.Millisecond}, 1)
	s.Add(TimedResult{Label: "K = 50", Value: 10, Elapsed: 250 * time.Microsecond}, 50)
	if err := w.WriteSweep(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "====================\n\n" +
		"My Algorithm\n" +
		"K\t\tTime, ms\t\tResult\n" +
		"1\t\t4\t\t10\n" +
		"50\t\t0.25\t\t10\n" +
		"The smallest number: K = 50 for\t0.25 ms\n"
	if buf.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)

	s := Sweep{Name: "My Algorithm", Kind: KindPartition}
	s.Add(TimedResult{Label: "K = 1", Value: 10, Elapsed: 3 * time.Millisecond}, 1)
	s.Add(TimedResult{Label: "K = 2", Value: 10, Elapsed: time.Millisecond}, 2)
	if err := w.WriteSweep(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("expected newline-terminated document, got %q", buf.String())
	}

	var doc jsonSweep
	if err := sonic.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Kind != "partition" || len(doc.Results) != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Results[1].Param == nil || *doc.Results[1].Param != 2 {
		t.Errorf("results[1].param = %v, want 2", doc.Results[1].Param)
	}
	if doc.Fastest == nil || doc.Fastest.Label != "K = 2" || doc.Fastest.ElapsedMs != 1 {
		t.Errorf("fastest = %+v, want K = 2 at 1ms", doc.Fastest)
	}
}
