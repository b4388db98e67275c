package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/cardpress/fonts"
	"github.com/ByLCY/cardpress/layout"
	"github.com/ByLCY/cardpress/renderer"
)

// Renderer 基于 github.com/tdewolff/canvas 将布局树合成为矢量文档。
// 画布单位约定为像素；与字体系统交互使用 pt，在边界做 px↔pt 换算。
type Renderer struct {
	fonts *fonts.Set

	fontMu   sync.Mutex
	families map[fonts.Key]*fontFamilyEntry
}

var (
	_ renderer.Compositor = (*Renderer)(nil)
	_ layout.Typesetter   = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// NewRenderer 创建使用给定字体集的合成器。字体集只读共享，
// canvas.FontFamily 按需构建并缓存。
func NewRenderer(set *fonts.Set) *Renderer {
	return &Renderer{
		fonts:    set,
		families: map[fonts.Key]*fontFamilyEntry{},
	}
}

// Compose 对布局树做布局计算，将显示列表绘制到画布并序列化为 SVG。
// 产出文档的声明尺寸恒等于请求的 width/height。
func (r *Renderer) Compose(tree *layout.Node, width, height float64) (*renderer.Document, error) {
	result, err := layout.Build(tree, width, height, layout.BuildOptions{Typesetter: r})
	if err != nil {
		return nil, err
	}

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	for _, op := range result.Ops {
		switch op := op.(type) {
		case layout.RectOp:
			r.drawRect(ctx, op)
		case layout.TextOp:
			if err := r.drawText(ctx, op); err != nil {
				return nil, err
			}
		case layout.ImageOp:
			if err := r.drawImage(ctx, op); err != nil {
				return nil, err
			}
		case layout.PathOp:
			if err := r.drawPath(ctx, op); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	writer := svg.New(&buf, width, height, nil)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("canvasrenderer: 写入 SVG 失败: %w", err)
	}

	return &renderer.Document{
		Width:  width,
		Height: height,
		SVG:    buf.Bytes(),
		Canvas: c,
	}, nil
}

// LayoutLines 实现 layout.Typesetter 接口，使用贪心换行算法。
// 约定：width 与返回的行宽均为像素。
func (r *Renderer) LayoutLines(content string, width float64, style layout.TextStyle) ([]layout.TextLine, error) {
	face, err := r.fontFace(style)
	if err != nil {
		return nil, err
	}
	measure := func(s string) float64 {
		w := face.TextWidth(s)
		if style.LetterSpacing > 0 {
			if n := utf8.RuneCountInString(s); n > 1 {
				w += style.LetterSpacing * float64(n-1)
			}
		}
		return w
	}
	lines := greedyWrap(content, width, measure)
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: "", Width: 0}}
	}
	return lines, nil
}

func (r *Renderer) drawRect(ctx *canvas.Context, op layout.RectOp) {
	var p *canvas.Path
	if op.Radius > 0 {
		p = canvas.RoundedRectangle(op.W, op.H, op.Radius)
	} else {
		p = canvas.Rectangle(op.W, op.H)
	}

	switch {
	case op.Fill != nil && op.Fill.Gradient != nil:
		g := op.Fill.Gradient
		start := canvas.Point{X: op.X + g.X0*op.W, Y: op.Y + g.Y0*op.H}
		end := canvas.Point{X: op.X + g.X1*op.W, Y: op.Y + g.Y1*op.H}
		lg := canvas.NewLinearGradient(start, end)
		for _, s := range g.Stops {
			lg.Add(s.Offset, s.Color)
		}
		ctx.SetFillGradient(lg)
	case op.Fill != nil && op.Fill.Color != nil:
		ctx.SetFillColor(*op.Fill.Color)
	default:
		ctx.SetFillColor(canvas.Transparent)
	}

	if op.StrokeWidth > 0 {
		ctx.SetStrokeColor(op.Stroke)
		ctx.SetStrokeWidth(op.StrokeWidth)
	} else {
		ctx.SetStrokeColor(canvas.Transparent)
	}
	ctx.DrawPath(op.X, op.Y, p)
}

func (r *Renderer) drawText(ctx *canvas.Context, op layout.TextOp) error {
	st := op.Style
	face, err := r.fontFace(st)
	if err != nil {
		return err
	}

	// 处理水平对齐：left（默认）/center/right。
	var textAlign canvas.TextAlign
	var anchorX float64
	switch st.Align {
	case layout.TextCenter:
		textAlign = canvas.Center
		anchorX = op.X + op.W/2
	case layout.TextRight:
		textAlign = canvas.Right
		anchorX = op.X + op.W
	default:
		textAlign = canvas.Left
		anchorX = op.X
	}

	// 基线位置：行盒高度与字体自然行高的差值取半行距，再加上升部。
	metrics := face.Metrics()
	lineHeight := st.Size * st.LineHeight
	leading := (lineHeight - metrics.LineHeight) / 2

	for i, line := range op.Lines {
		if line.Content == "" {
			continue
		}
		baseline := op.Y + float64(i)*lineHeight + leading + metrics.Ascent
		if st.LetterSpacing > 0 {
			r.drawSpacedLine(ctx, face, line.Content, anchorX, baseline, st.LetterSpacing)
			continue
		}
		ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, line.Content, textAlign))
	}
	return nil
}

// drawSpacedLine 按字符绘制并在字符间插入额外间距（letter-spacing）。
// 仅支持左对齐锚点，模板中的字距文本均为左对齐。
func (r *Renderer) drawSpacedLine(ctx *canvas.Context, face *canvas.FontFace, s string, x, baseline, spacing float64) {
	for _, ch := range s {
		g := string(ch)
		ctx.DrawText(x, baseline, canvas.NewTextLine(face, g, canvas.Left))
		x += face.TextWidth(g) + spacing
	}
}

func (r *Renderer) drawImage(ctx *canvas.Context, op layout.ImageOp) error {
	src, err := imaging.Decode(bytes.NewReader(op.Image.Data))
	if err != nil {
		return fmt.Errorf("canvasrenderer: 解码图片载荷（%s）失败: %w", op.Image.MIME, err)
	}
	w := int(math.Round(op.W))
	h := int(math.Round(op.H))
	if w <= 0 || h <= 0 {
		return nil
	}

	var fitted image.Image
	switch op.Image.Fit {
	case layout.FitContain:
		fitted = imaging.Fit(src, w, h, imaging.Lanczos)
	default:
		// object-fit: cover —— 等比缩放裁剪到目标矩形
		fitted = imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
	}

	b := fitted.Bounds()
	dx := (op.W - float64(b.Dx())) / 2
	dy := (op.H - float64(b.Dy())) / 2
	ctx.DrawImage(op.X+dx, op.Y+dy, fitted, canvas.DPMM(1.0))
	return nil
}

func (r *Renderer) drawPath(ctx *canvas.Context, op layout.PathOp) error {
	p, err := canvas.ParseSVGPath(op.Path.D)
	if err != nil {
		return fmt.Errorf("canvasrenderer: 解析 SVG 路径失败: %w", err)
	}
	vb := op.Path.ViewBox
	if vb <= 0 {
		vb = math.Max(op.W, op.H)
	}
	scale := 1.0
	if vb > 0 && op.W > 0 {
		scale = op.W / vb
		p = p.Scale(scale, scale)
	}

	if op.Path.Fill != nil {
		ctx.SetFillColor(*op.Path.Fill)
	} else {
		ctx.SetFillColor(canvas.Transparent)
	}
	if op.Path.Stroke != nil && op.Path.StrokeWidth > 0 {
		ctx.SetStrokeColor(*op.Path.Stroke)
		ctx.SetStrokeWidth(op.Path.StrokeWidth * scale)
	} else {
		ctx.SetStrokeColor(canvas.Transparent)
	}
	ctx.DrawPath(op.X, op.Y, p)
	return nil
}

func (r *Renderer) fontFace(st layout.TextStyle) (*canvas.FontFace, error) {
	entry, err := r.ensureFamily(st.Family, st.Weight, st.Italic)
	if err != nil {
		return nil, err
	}
	col := applyOpacity(st.Color, st.Opacity)
	return entry.family.Face(st.Size*layout.PxToPt, col, entry.style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFamily(family string, weight int, italic bool) (*fontFamilyEntry, error) {
	key := fonts.Key{Family: family, Weight: weight, Italic: italic}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.families[key]; ok {
		return entry, nil
	}

	data, err := r.fonts.Lookup(family, weight, italic)
	if err != nil {
		return nil, err
	}
	style := canvasFontStyle(weight, italic)
	fam := canvas.NewFontFamily(family)
	if err := fam.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("canvasrenderer: 加载字体 %s (weight=%d) 失败: %w", family, weight, err)
	}

	entry := &fontFamilyEntry{family: fam, style: style}
	r.families[key] = entry
	return entry, nil
}

// canvasFontStyle 将数值字重映射为 canvas 的字体风格。
func canvasFontStyle(weight int, italic bool) canvas.FontStyle {
	var style canvas.FontStyle
	switch {
	case weight >= 900:
		style = canvas.FontBlack
	case weight >= 800:
		style = canvas.FontExtraBold
	case weight >= 700:
		style = canvas.FontBold
	case weight >= 600:
		style = canvas.FontSemiBold
	case weight >= 500:
		style = canvas.FontMedium
	case weight > 0 && weight <= 300:
		style = canvas.FontLight
	default:
		style = canvas.FontRegular
	}
	if italic {
		style |= canvas.FontItalic
	}
	return style
}

func applyOpacity(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 || opacity <= 0 {
		return c
	}
	c.A = uint8(math.Round(float64(c.A) * opacity))
	return c
}

// greedyWrap 优先在空白处折行，单个词超宽时在词内拆分。
// 显式 \n 强制换行；由宽度触发的换行会丢弃行首空白。
func greedyWrap(content string, width float64, measure func(string) float64) []layout.TextLine {
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	tokens := tokenizeContent(content)
	var lines []layout.TextLine
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, layout.TextLine{Content: "", Width: 0})
			}
			return
		}
		lines = append(lines, layout.TextLine{Content: builder.String(), Width: currentWidth})
		builder.Reset()
		currentWidth = 0
	}

	appendToken := func(token string) {
		builder.WriteString(token)
		currentWidth = measure(builder.String())
	}

	for _, token := range tokens {
		if token == "\n" {
			emit(true)
			continue
		}
		if isSpaceToken(token) && builder.Len() == 0 {
			continue
		}

		tokenWidth := measure(token)
		if currentWidth > 0 && currentWidth+tokenWidth > limit {
			emit(false)
			if isSpaceToken(token) {
				continue
			}
		}
		if tokenWidth <= limit {
			appendToken(token)
			continue
		}

		for _, chunk := range splitTokenByWidth(token, limit, measure) {
			chunkWidth := measure(chunk)
			if currentWidth > 0 && currentWidth+chunkWidth > limit {
				emit(false)
			}
			appendToken(chunk)
		}
	}

	emit(true)
	return lines
}

func isSpaceToken(token string) bool {
	for _, r := range token {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return token != ""
}

func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, measure func(string) float64) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		builder.WriteRune(r)
		if measure(builder.String()) > limit && utf8.RuneCountInString(builder.String()) > 1 {
			runes := []rune(builder.String())
			parts = append(parts, string(runes[:len(runes)-1]))
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}
