package renderer

import (
	"github.com/ByLCY/cardpress/layout"

	"github.com/tdewolff/canvas"
)

// Document 为合成阶段产出的矢量文档：声明尺寸恒等于请求的画布尺寸，
// SVG 为自包含的序列化形式，Canvas 保留已合成的画布供栅格化直接使用。
type Document struct {
	Width  float64
	Height float64
	SVG    []byte
	Canvas *canvas.Canvas
}

// Compositor 将布局树合成为矢量文档。
type Compositor interface {
	Compose(tree *layout.Node, width, height float64) (*Document, error)
}
