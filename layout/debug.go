package layout

import (
	"encoding/json"
	"os"
)

// debugOp wraps an Op with its kind tag for the debug JSON output.
type debugOp struct {
	Kind string `json:"kind"`
	Op   Op     `json:"op"`
}

// MarshalDebugJSON 将显示列表输出为 JSON，便于调试或模板树对比。
func MarshalDebugJSON(res *Result) ([]byte, error) {
	if res == nil {
		return nil, nil
	}
	ops := make([]debugOp, 0, len(res.Ops))
	for _, op := range res.Ops {
		d := debugOp{Op: op}
		switch op.(type) {
		case RectOp:
			d.Kind = "rect"
		case TextOp:
			d.Kind = "text"
		case ImageOp:
			d.Kind = "image"
		case PathOp:
			d.Kind = "path"
		}
		ops = append(ops, d)
	}
	return json.MarshalIndent(struct {
		Width  float64   `json:"width"`
		Height float64   `json:"height"`
		Ops    []debugOp `json:"ops"`
	}{res.Width, res.Height, ops}, "", "  ")
}

// WriteDebugJSON 将布局结果输出为 JSON 文件，便于调试或可视化。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := MarshalDebugJSON(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
