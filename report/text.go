package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const separatorWidth = 20

// TextWriter 按控制台版式输出，多轮测量之间用一行等号分隔
type TextWriter struct {
	w       io.Writer
	written bool
}

// NewTextWriter 创建写入 w 的 TextWriter
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

func (t *TextWriter) WriteSweep(s Sweep) error {
	bw := bufio.NewWriter(t.w)
	if t.written {
		fmt.Fprintf(bw, "%s\n\n", strings.Repeat("=", separatorWidth))
	}

	switch s.Kind {
	case KindPartition:
		writePartition(bw, s)
	default:
		writePolicy(bw, s)
	}

	if fastest, ok := s.Fastest(); ok {
		fmt.Fprintf(bw, "The smallest number: %s for\t%s ms\n", fastest.Label, formatMillis(fastest.Millis()))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write sweep %q: %w", s.Name, err)
	}
	t.written = true
	return nil
}

func writePolicy(w io.Writer, s Sweep) {
	for _, r := range s.Results {
		fmt.Fprintf(w, "EXECUTION POLICY: %s\n", r.Label)
		fmt.Fprintf(w, "Result: %d\n", r.Value)
		fmt.Fprintf(w, "Execution time: %s ms\n\n", formatMillis(r.Millis()))
	}
}

func writePartition(w io.Writer, s Sweep) {
	fmt.Fprintln(w, s.Name)
	fmt.Fprintf(w, "K\t\tTime, ms\t\tResult\n")
	for i, r := range s.Results {
		k := r.Label
		if i < len(s.Params) {
			k = fmt.Sprint(s.Params[i])
		}
		fmt.Fprintf(w, "%s\t\t%s\t\t%d\n", k, formatMillis(r.Millis()), r.Value)
	}
}

// formatMillis 六位有效数字，和 iostream 默认精度一致
func formatMillis(ms float64) string {
	return fmt.Sprintf("%.6g", ms)
}
