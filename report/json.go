package report

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

type jsonResult struct {
	Label     string  `json:"label"`
	Param     *int    `json:"param,omitempty"`
	Value     int64   `json:"value"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

type jsonSweep struct {
	Name    string       `json:"name"`
	Kind    string       `json:"kind"`
	Results []jsonResult `json:"results"`
	Fastest *jsonResult  `json:"fastest,omitempty"`
}

// JSONWriter 每轮测量输出一行 JSON，便于脚本收集
type JSONWriter struct {
	w   io.Writer
	api sonic.API
}

// NewJSONWriter 创建写入 w 的 JSONWriter
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, api: sonic.ConfigStd}
}

func (j *JSONWriter) WriteSweep(s Sweep) error {
	doc := jsonSweep{
		Name:    s.Name,
		Kind:    s.Kind.String(),
		Results: make([]jsonResult, len(s.Results)),
	}
	for i, r := range s.Results {
		doc.Results[i] = toJSON(r)
		if i < len(s.Params) {
			p := s.Params[i]
			doc.Results[i].Param = &p
		}
	}
	if fastest, ok := s.Fastest(); ok {
		jr := toJSON(fastest)
		doc.Fastest = &jr
	}

	if err := j.api.NewEncoder(j.w).Encode(doc); err != nil {
		return fmt.Errorf("encode sweep %q: %w", s.Name, err)
	}
	return nil
}

func toJSON(r TimedResult) jsonResult {
	return jsonResult{Label: r.Label, Value: r.Value, ElapsedMs: r.Millis()}
}
