package layout

import (
	"fmt"
	"math"
	"strings"
)

// Build 对布局树做盒模型布局，生成按绘制顺序排列的显示列表。
// width/height 为目标画布尺寸（px），必须为正。
func Build(root *Node, width, height float64, opts BuildOptions) (*Result, error) {
	if root == nil {
		return nil, fmt.Errorf("layout: 布局树为空")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("layout: 画布尺寸必须为正，收到 %gx%g", width, height)
	}

	res := &Result{Width: width, Height: height}
	eng := &engine{ts: opts.Typesetter, res: res}
	if err := eng.place(root, frame{0, 0, width, height}); err != nil {
		return nil, err
	}
	return res, nil
}

// frame 为左上角坐标系下的矩形区域。
type frame struct {
	x, y, w, h float64
}

type engine struct {
	ts  Typesetter
	res *Result
}

// measure 计算节点在给定可用空间内的固有尺寸。
// 显式的 px/percent 尺寸优先；auto 尺寸由内容推导。
func (e *engine) measure(n *Node, availW, availH float64) (float64, float64, error) {
	w, wOK := n.Style.Width.Resolve(availW)
	h, hOK := n.Style.Height.Resolve(availH)

	switch n.Kind {
	case KindText:
		st := resolveTextStyle(n.Text)
		limit := availW
		if wOK {
			limit = w
		}
		if st.MaxWidth > 0 && st.MaxWidth < limit {
			limit = st.MaxWidth
		}
		lines, err := e.ts.LayoutLines(transformText(n.Content, st.Transform), limit, st)
		if err != nil {
			return 0, 0, err
		}
		if !wOK {
			for _, ln := range lines {
				w = math.Max(w, ln.Width)
			}
		}
		if !hOK {
			h = lineHeightPx(st) * float64(len(lines))
		}
		return w, h, nil

	case KindImage, KindPath:
		// 图片与路径无固有尺寸，由显式样式决定；auto 视为 0。
		return w, h, nil
	}

	pad := n.Style.Padding
	innerW := availW - pad.Left - pad.Right
	if wOK {
		innerW = w - pad.Left - pad.Right
	}
	innerH := availH - pad.Top - pad.Bottom
	if hOK {
		innerH = h - pad.Top - pad.Bottom
	}

	var mainSum, crossMax float64
	count := 0
	for _, c := range n.Children {
		if c.Style.Position == PositionAbsolute {
			continue
		}
		cw, ch, err := e.measure(c, innerW, innerH)
		if err != nil {
			return 0, 0, err
		}
		if n.Style.Direction == Column {
			mainSum += ch
			crossMax = math.Max(crossMax, cw)
		} else {
			mainSum += cw
			crossMax = math.Max(crossMax, ch)
		}
		count++
	}
	if count > 1 {
		mainSum += n.Style.Gap * float64(count-1)
	}

	if n.Style.Direction == Column {
		if !wOK {
			w = crossMax + pad.Left + pad.Right
		}
		if !hOK {
			h = mainSum + pad.Top + pad.Bottom
		}
	} else {
		if !wOK {
			w = mainSum + pad.Left + pad.Right
		}
		if !hOK {
			h = crossMax + pad.Top + pad.Bottom
		}
	}
	return w, h, nil
}

// place 将节点放入给定区域并输出绘制指令，随后递归处理子节点。
func (e *engine) place(n *Node, f frame) error {
	switch n.Kind {
	case KindText:
		st := resolveTextStyle(n.Text)
		limit := f.w
		if st.MaxWidth > 0 && st.MaxWidth < limit {
			limit = st.MaxWidth
		}
		lines, err := e.ts.LayoutLines(transformText(n.Content, st.Transform), limit, st)
		if err != nil {
			return err
		}
		e.res.Ops = append(e.res.Ops, TextOp{X: f.x, Y: f.y, W: limit, Lines: lines, Style: st})
		return nil

	case KindImage:
		if n.Image == nil || len(n.Image.Data) == 0 {
			return fmt.Errorf("layout: 图片节点缺少载荷")
		}
		e.res.Ops = append(e.res.Ops, ImageOp{X: f.x, Y: f.y, W: f.w, H: f.h, Image: n.Image})
		return nil

	case KindPath:
		if n.Path == nil || n.Path.D == "" {
			return fmt.Errorf("layout: 路径节点缺少路径数据")
		}
		e.res.Ops = append(e.res.Ops, PathOp{X: f.x, Y: f.y, W: f.w, H: f.h, Path: n.Path})
		return nil
	}

	if n.Style.Background != nil || n.Style.BorderWidth > 0 {
		e.res.Ops = append(e.res.Ops, RectOp{
			X: f.x, Y: f.y, W: f.w, H: f.h,
			Fill:        n.Style.Background,
			Radius:      clampRadius(n.Style.BorderRadius, f.w, f.h),
			StrokeWidth: n.Style.BorderWidth,
			Stroke:      n.Style.BorderColor,
		})
	}
	return e.placeChildren(n, f)
}

// placeChildren 先按 flex 规则计算常规流子节点的位置，再解析绝对定位子节点，
// 最后按文档顺序输出，保证 z 轴层叠与声明顺序一致。
func (e *engine) placeChildren(n *Node, f frame) error {
	if len(n.Children) == 0 {
		return nil
	}

	pad := n.Style.Padding
	content := frame{
		x: f.x + pad.Left,
		y: f.y + pad.Top,
		w: f.w - pad.Left - pad.Right,
		h: f.h - pad.Top - pad.Bottom,
	}
	column := n.Style.Direction == Column

	frames := make([]frame, len(n.Children))
	var flowIdx []int
	var mainTotal float64
	for i, c := range n.Children {
		if c.Style.Position == PositionAbsolute {
			continue
		}
		cw, ch, err := e.measure(c, content.w, content.h)
		if err != nil {
			return err
		}
		// 交叉轴 stretch：auto 尺寸的子节点拉伸至内容区宽/高。
		if alignFor(c, n) == AlignStretch {
			if column && c.Style.Width.IsAuto() && c.Kind != KindText {
				cw = content.w
			}
			if !column && c.Style.Height.IsAuto() && c.Kind != KindText {
				ch = content.h
			}
		}
		frames[i] = frame{w: cw, h: ch}
		flowIdx = append(flowIdx, i)
		if column {
			mainTotal += ch
		} else {
			mainTotal += cw
		}
	}
	if len(flowIdx) > 1 {
		mainTotal += n.Style.Gap * float64(len(flowIdx)-1)
	}

	contentMain := content.w
	if column {
		contentMain = content.h
	}
	leftover := math.Max(contentMain-mainTotal, 0)

	cursor := 0.0
	step := n.Style.Gap
	switch n.Style.Justify {
	case JustifyCenter:
		cursor = leftover / 2
	case JustifyEnd:
		cursor = leftover
	case JustifySpaceBetween:
		if len(flowIdx) > 1 {
			step += leftover / float64(len(flowIdx)-1)
		}
	}

	for _, i := range flowIdx {
		c := n.Children[i]
		fr := frames[i]
		if column {
			fr.y = content.y + cursor
			fr.x = content.x + crossOffset(alignFor(c, n), content.w, fr.w)
			cursor += fr.h + step
		} else {
			fr.x = content.x + cursor
			fr.y = content.y + crossOffset(alignFor(c, n), content.h, fr.h)
			cursor += fr.w + step
		}
		frames[i] = fr
	}

	// 绝对定位子节点：偏移相对于本盒子的边框盒。
	for i, c := range n.Children {
		if c.Style.Position != PositionAbsolute {
			continue
		}
		cw, ch, err := e.measure(c, f.w, f.h)
		if err != nil {
			return err
		}
		fr := frame{w: cw, h: ch}

		l, lOK := c.Style.Left.Resolve(f.w)
		r, rOK := c.Style.Right.Resolve(f.w)
		switch {
		case lOK && rOK:
			fr.x = f.x + l
			fr.w = f.w - l - r
		case lOK:
			fr.x = f.x + l
		case rOK:
			fr.x = f.x + f.w - r - fr.w
		default:
			fr.x = content.x
		}

		t, tOK := c.Style.Top.Resolve(f.h)
		b, bOK := c.Style.Bottom.Resolve(f.h)
		switch {
		case tOK && bOK:
			fr.y = f.y + t
			fr.h = f.h - t - b
		case tOK:
			fr.y = f.y + t
		case bOK:
			fr.y = f.y + f.h - b - fr.h
		default:
			fr.y = content.y
		}
		frames[i] = fr
	}

	for i, c := range n.Children {
		if err := e.place(c, frames[i]); err != nil {
			return err
		}
	}
	return nil
}

// alignFor 解析子节点在交叉轴上的最终对齐方式。
func alignFor(c, parent *Node) Align {
	a := c.Style.AlignSelf
	if a == AlignAuto {
		a = parent.Style.AlignItems
	}
	if a == AlignAuto {
		a = AlignStretch
	}
	return a
}

func crossOffset(a Align, avail, size float64) float64 {
	switch a {
	case AlignCenter:
		return math.Max(avail-size, 0) / 2
	case AlignEnd:
		return math.Max(avail-size, 0)
	default:
		return 0
	}
}

func clampRadius(r, w, h float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Min(r, math.Min(w, h)/2)
}

// resolveTextStyle 补齐文本样式的默认值，保证进入排版与绘制的样式是显式的。
func resolveTextStyle(st TextStyle) TextStyle {
	if st.Size <= 0 {
		st.Size = 16
	}
	if st.LineHeight <= 0 {
		st.LineHeight = 1.2
	}
	if st.Weight <= 0 {
		st.Weight = 400
	}
	if st.Opacity <= 0 || st.Opacity > 1 {
		st.Opacity = 1
	}
	return st
}

func lineHeightPx(st TextStyle) float64 { return st.Size * st.LineHeight }

func transformText(s string, t TextTransform) string {
	if t == TransformUppercase {
		return strings.ToUpper(s)
	}
	return s
}
