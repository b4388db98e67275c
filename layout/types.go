package layout

// 该文件定义布局树节点与布局结果，供模板构建、布局计算与渲染共用。

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Kind 区分布局树节点类型。
type Kind int

const (
	KindBox Kind = iota
	KindText
	KindImage
	KindPath
)

// Direction 为主轴方向。
type Direction int

const (
	Row Direction = iota
	Column
)

// Justify 控制主轴上的子节点分布。
type Justify int

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
)

// Align 控制交叉轴对齐；AlignAuto 表示继承父节点的 align-items（默认 stretch）。
type Align int

const (
	AlignAuto Align = iota
	AlignStretch
	AlignStart
	AlignCenter
	AlignEnd
)

// Position 区分常规流与绝对定位。
type Position int

const (
	PositionStatic Position = iota
	PositionAbsolute
)

// Fit 为图片的 object-fit 模式。
type Fit int

const (
	FitCover Fit = iota
	FitContain
)

// TextTransform 为文本的大小写变换。
type TextTransform int

const (
	TransformNone TextTransform = iota
	TransformUppercase
)

// TextAlign 为文本块内的水平对齐方式。
type TextAlign int

const (
	TextLeft TextAlign = iota
	TextCenter
	TextRight
)

// Insets 以像素描述四边内边距。
type Insets struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// UniformInsets 返回四边相同的内边距。
func UniformInsets(v float64) Insets {
	return Insets{Top: v, Right: v, Bottom: v, Left: v}
}

// SymmetricInsets 返回上下为 v、左右为 h 的内边距。
func SymmetricInsets(v, h float64) Insets {
	return Insets{Top: v, Right: h, Bottom: v, Left: h}
}

// GradientStop 为线性渐变中的一个色标，Offset 取值 0-1。
type GradientStop struct {
	Offset float64    `json:"offset"`
	Color  color.RGBA `json:"color"`
}

// LinearGradient 描述线性渐变。起止点坐标为所填充盒子的相对比例（0-1）。
type LinearGradient struct {
	X0     float64        `json:"x0,omitempty"`
	Y0     float64        `json:"y0,omitempty"`
	X1     float64        `json:"x1,omitempty"`
	Y1     float64        `json:"y1,omitempty"`
	Stops  []GradientStop `json:"stops"`
}

// ToBottom 返回自上而下的线性渐变。
func ToBottom(stops ...GradientStop) *LinearGradient {
	return &LinearGradient{X0: 0.5, Y0: 0, X1: 0.5, Y1: 1, Stops: stops}
}

// Fill 为纯色或线性渐变填充，二者只取其一。
type Fill struct {
	Color    *color.RGBA     `json:"color,omitempty"`
	Gradient *LinearGradient `json:"gradient,omitempty"`
}

// SolidFill 返回纯色填充。
func SolidFill(c color.RGBA) *Fill { return &Fill{Color: &c} }

// GradientFill 返回渐变填充。
func GradientFill(g *LinearGradient) *Fill { return &Fill{Gradient: g} }

// BoxStyle 描述盒子的布局与外观属性，尺寸与定位字段对所有节点类型生效。
type BoxStyle struct {
	Direction  Direction `json:"direction"`
	Justify    Justify   `json:"justify"`
	AlignItems Align     `json:"alignItems"`
	AlignSelf  Align     `json:"alignSelf"`
	Gap        float64   `json:"gap,omitempty"`
	Padding    Insets    `json:"padding"`

	Position Position  `json:"position"`
	Top      Dimension `json:"topOffset"`
	Right    Dimension `json:"rightOffset"`
	Bottom   Dimension `json:"bottomOffset"`
	Left     Dimension `json:"leftOffset"`

	Width  Dimension `json:"width"`
	Height Dimension `json:"height"`

	Background   *Fill      `json:"background,omitempty"`
	BorderRadius float64    `json:"borderRadius,omitempty"`
	BorderWidth  float64    `json:"borderWidth,omitempty"`
	BorderColor  color.RGBA `json:"borderColor,omitempty"`
}

// TextStyle 描述文本叶节点的完整样式。进入布局前必须是已解析的显式样式，
// Build 会对零值字段补默认值（Size 16、LineHeight 1.2、Weight 400、Opacity 1）。
type TextStyle struct {
	Family        string        `json:"family"`
	Weight        int           `json:"weight"`
	Italic        bool          `json:"italic,omitempty"`
	Size          float64       `json:"size"`
	Color         color.RGBA    `json:"color"`
	Opacity       float64       `json:"opacity"`
	LineHeight    float64       `json:"lineHeight"` // 字号的倍数
	LetterSpacing float64       `json:"letterSpacing,omitempty"`
	Transform     TextTransform `json:"transform,omitempty"`
	MaxWidth      float64       `json:"maxWidth,omitempty"` // px，0 表示不限制
	Align         TextAlign     `json:"align,omitempty"`
}

// ImageData 为已内联的图片载荷，由 Image 叶节点引用。
type ImageData struct {
	Data []byte `json:"-"`
	MIME string `json:"mime"`
	Fit  Fit    `json:"fit"`
}

// PathData 为 SVG 路径叶节点（例如星形图标），坐标以 ViewBox 为参考系，
// 布局时按节点的 Width/Height 等比缩放。
type PathData struct {
	D           string      `json:"d"`
	ViewBox     float64     `json:"viewBox"`
	Fill        *color.RGBA `json:"fill,omitempty"`
	Stroke      *color.RGBA `json:"stroke,omitempty"`
	StrokeWidth float64     `json:"strokeWidth,omitempty"`
}

// Node 为布局树节点：Box 容器、Text/Image/Path 叶节点。
// 树不允许共享或成环，每次渲染独占一棵。
type Node struct {
	Kind     Kind      `json:"kind"`
	Style    BoxStyle  `json:"style"`
	Content  string    `json:"content,omitempty"`
	Text     TextStyle `json:"text,omitempty"`
	Image    *ImageData `json:"image,omitempty"`
	Path     *PathData  `json:"path,omitempty"`
	Children []*Node    `json:"children,omitempty"`
}

// NewBox 构造容器节点。
func NewBox(style BoxStyle, children ...*Node) *Node {
	return &Node{Kind: KindBox, Style: style, Children: children}
}

// NewText 构造文本叶节点。
func NewText(content string, style TextStyle) *Node {
	return &Node{Kind: KindText, Content: content, Text: style}
}

// NewImage 构造图片叶节点。
func NewImage(img *ImageData, style BoxStyle) *Node {
	return &Node{Kind: KindImage, Style: style, Image: img}
}

// NewPath 构造 SVG 路径叶节点。
func NewPath(p *PathData, style BoxStyle) *Node {
	return &Node{Kind: KindPath, Style: style, Path: p}
}

// Result 保存布局后的显示列表：按绘制顺序排列的矩形、文本、图片与路径。
type Result struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ops    []Op    `json:"ops"`
}

// Op 为显示列表中的一条绘制指令。
type Op interface{ op() }

// RectOp 绘制一个可带圆角、描边与渐变填充的矩形。
type RectOp struct {
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	W           float64    `json:"w"`
	H           float64    `json:"h"`
	Fill        *Fill      `json:"fill,omitempty"`
	Radius      float64    `json:"radius,omitempty"`
	StrokeWidth float64    `json:"strokeWidth,omitempty"`
	Stroke      color.RGBA `json:"stroke,omitempty"`
}

// TextOp 绘制一个已折行的文本块，Y 为首行顶部。
type TextOp struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	W     float64    `json:"w"`
	Lines []TextLine `json:"lines"`
	Style TextStyle  `json:"style"`
}

// ImageOp 在目标矩形内按 object-fit 绘制图片。
type ImageOp struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	W     float64    `json:"w"`
	H     float64    `json:"h"`
	Image *ImageData `json:"image"`
}

// PathOp 在目标矩形内绘制 SVG 路径。
type PathOp struct {
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
	W    float64   `json:"w"`
	H    float64   `json:"h"`
	Path *PathData `json:"path"`
}

func (RectOp) op()  {}
func (TextOp) op()  {}
func (ImageOp) op() {}
func (PathOp) op()  {}

// TextLine 表示排版后的一行文本及其宽度（px）。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// RGBA 按 0-255 分量构造不透明颜色。
func RGBA(r, g, b, a uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: a} }

// ParseHexColor 解析 #rgb 或 #rrggbb 形式的十六进制颜色。
func ParseHexColor(s string) (color.RGBA, error) {
	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(v) {
	case 3:
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	case 6:
	default:
		return color.RGBA{}, fmt.Errorf("无效的颜色值：%q", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("无效的颜色值 %q: %w", s, err)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}
