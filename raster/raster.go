package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/ByLCY/cardpress/renderer"
)

// Black 为默认的不透明背景色。
var Black = color.NRGBA{R: 0, G: 0, B: 0, A: 0xff}

// Rasterize 将矢量文档栅格化为 PNG：先按目标宽度等比缩放绘制，
// 再合成到不透明背景上。高度跟随文档宽高比，不做任何额外变形。
func Rasterize(doc *renderer.Document, width int, background color.Color) ([]byte, error) {
	if doc == nil || doc.Canvas == nil {
		return nil, fmt.Errorf("raster: 矢量文档为空")
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("raster: 文档尺寸无效 %gx%g", doc.Width, doc.Height)
	}
	if width <= 0 {
		width = int(doc.Width)
	}
	if background == nil {
		background = Black
	}

	scale := float64(width) / doc.Width
	img := rasterizer.Draw(doc.Canvas, canvas.DPMM(scale), canvas.DefaultColorSpace)

	// 不透明背景合成：输出永远没有 alpha 透出。
	out := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), background)
	out = imaging.Overlay(out, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("raster: 编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}
