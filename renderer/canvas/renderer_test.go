package canvasrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/cardpress/fonts"
	"github.com/ByLCY/cardpress/layout"
)

// newTestRenderer 用 Go 自带字体冒充模板字体，避免测试依赖磁盘上的字体文件。
func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	set := fonts.NewSet()
	if err := set.Register("Roboto", 700, false, goregular.TTF); err != nil {
		t.Fatalf("注册测试字体失败: %v", err)
	}
	if err := set.Register("Bebas Neue", 400, false, goregular.TTF); err != nil {
		t.Fatalf("注册测试字体失败: %v", err)
	}
	return NewRenderer(set)
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("编码测试图片失败: %v", err)
	}
	return buf.Bytes()
}

func textStyle() layout.TextStyle {
	return layout.TextStyle{
		Family:     "Roboto",
		Weight:     700,
		Size:       20,
		Color:      layout.RGBA(0xff, 0xff, 0xff, 0xff),
		Opacity:    1,
		LineHeight: 1.2,
	}
}

func TestLayoutLinesExplicitNewline(t *testing.T) {
	r := newTestRenderer(t)
	lines, err := r.LayoutLines("first\nsecond", 0, textStyle())
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if len(lines) != 2 || lines[0].Content != "first" || lines[1].Content != "second" {
		t.Fatalf("显式换行结果错误: %+v", lines)
	}
}

func TestLayoutLinesWrapsAtWidth(t *testing.T) {
	r := newTestRenderer(t)
	wide, err := r.LayoutLines("aaaa bbbb cccc", 10000, textStyle())
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if len(wide) != 1 {
		t.Fatalf("宽度充足时不应折行: %+v", wide)
	}

	// 限制为单行宽度的一半左右，必然折行。
	narrow, err := r.LayoutLines("aaaa bbbb cccc", wide[0].Width/2, textStyle())
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if len(narrow) < 2 {
		t.Fatalf("宽度不足时应折行: %+v", narrow)
	}
	for _, l := range narrow {
		if strings.HasPrefix(l.Content, " ") {
			t.Fatalf("宽度折行不应保留行首空白: %q", l.Content)
		}
	}
}

func TestLayoutLinesMissingFont(t *testing.T) {
	r := NewRenderer(fonts.NewSet())
	if _, err := r.LayoutLines("hello", 0, textStyle()); err == nil {
		t.Fatalf("缺失字体应当报错")
	}
}

func TestComposeProducesSVG(t *testing.T) {
	r := newTestRenderer(t)
	tree := layout.NewBox(
		layout.BoxStyle{
			Direction:  layout.Column,
			Padding:    layout.UniformInsets(10),
			Background: layout.SolidFill(layout.RGBA(0x1f, 0x29, 0x37, 0xff)),
		},
		layout.NewImage(
			&layout.ImageData{Data: testPNG(t, 8, 8), MIME: "image/png", Fit: layout.FitCover},
			layout.BoxStyle{Width: layout.Px(40), Height: layout.Px(40)},
		),
		layout.NewText("Hello World", textStyle()),
		layout.NewPath(
			&layout.PathData{D: "M0 0L10 0L10 10Z", ViewBox: 10},
			layout.BoxStyle{Width: layout.Px(16), Height: layout.Px(16)},
		),
	)

	star := layout.RGBA(250, 204, 21, 0xff)
	tree.Children[2].Path.Fill = &star

	doc, err := r.Compose(tree, 200, 200)
	if err != nil {
		t.Fatalf("Compose error: %v", err)
	}
	if doc.Width != 200 || doc.Height != 200 {
		t.Fatalf("文档尺寸错误: %gx%g", doc.Width, doc.Height)
	}
	if doc.Canvas == nil {
		t.Fatalf("文档缺少画布")
	}
	if !strings.Contains(string(doc.SVG), "<svg") {
		t.Fatalf("SVG 序列化结果异常: %.80s", doc.SVG)
	}
}

func TestComposeSpecialCharacters(t *testing.T) {
	r := newTestRenderer(t)
	tree := layout.NewBox(layout.BoxStyle{Direction: layout.Column},
		layout.NewText("a < b & c > d \"quoted\"", textStyle()),
	)
	doc, err := r.Compose(tree, 400, 100)
	if err != nil {
		t.Fatalf("特殊字符不应导致失败: %v", err)
	}
	if len(doc.SVG) == 0 {
		t.Fatalf("SVG 为空")
	}
}

func TestComposeMissingFontFails(t *testing.T) {
	r := NewRenderer(fonts.NewSet())
	tree := layout.NewBox(layout.BoxStyle{Direction: layout.Column},
		layout.NewText("x", textStyle()),
	)
	if _, err := r.Compose(tree, 100, 100); err == nil {
		t.Fatalf("缺失字体时 Compose 应当失败")
	}
}

func TestComposeBadImagePayload(t *testing.T) {
	r := newTestRenderer(t)
	tree := layout.NewBox(layout.BoxStyle{},
		layout.NewImage(
			&layout.ImageData{Data: []byte("not an image"), MIME: "image/png"},
			layout.BoxStyle{Width: layout.Px(10), Height: layout.Px(10)},
		),
	)
	if _, err := r.Compose(tree, 100, 100); err == nil {
		t.Fatalf("无法解码的图片应当失败")
	}
}

func TestGreedyWrapSplitsLongWord(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) * 10 }
	lines := greedyWrap("abcdefghij", 30, measure)
	if len(lines) != 4 {
		t.Fatalf("超宽单词应按宽度拆分: %+v", lines)
	}
	for _, l := range lines {
		if l.Width > 30 {
			t.Fatalf("行宽超限: %+v", l)
		}
	}
}

func TestCanvasFontStyleMapping(t *testing.T) {
	cases := []struct {
		weight int
		italic bool
		want   canvas.FontStyle
	}{
		{400, false, canvas.FontRegular},
		{700, false, canvas.FontBold},
		{900, false, canvas.FontBlack},
		{300, false, canvas.FontLight},
		{400, true, canvas.FontRegular | canvas.FontItalic},
	}
	for _, c := range cases {
		if got := canvasFontStyle(c.weight, c.italic); got != c.want {
			t.Fatalf("canvasFontStyle(%d, %v) = %v, want %v", c.weight, c.italic, got, c.want)
		}
	}
}
