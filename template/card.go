package template

import (
	"image/color"
	"strconv"

	"github.com/ByLCY/cardpress/fetch"
	"github.com/ByLCY/cardpress/layout"
)

// 星形图标的 SVG 路径，参考系为 24x24，渲染时放大到 32px。
const starPathD = "M12 2l3.09 6.26L22 9.27l-5 4.87 1.18 6.88L12 17.77l-6.18 3.25L7 14.14 2 9.27l6.91-1.01L12 2z"

var (
	white      = layout.RGBA(0xff, 0xff, 0xff, 0xff)
	starYellow = layout.RGBA(250, 204, 21, 0xff)
	black      = layout.RGBA(0, 0, 0, 0xff)
)

// cardText 构造卡片模板的文本样式：统一 Roboto Bold，白色为默认前景。
func cardText(size float64, c color.RGBA, opacity float64) layout.TextStyle {
	return layout.TextStyle{
		Family:     BodyFamily,
		Weight:     BodyWeight,
		Size:       size,
		Color:      c,
		Opacity:    opacity,
		LineHeight: 1.2,
	}
}

// BuildCard 将参数记录映射为电影卡片的布局树：全幅背景图、
// 自上而下的暗色渐变遮罩、上下分布的内容区（页眉 + 底部信息）。
// 纯函数，不做任何 I/O；img 为已内联的远程图片载荷，为空时省略背景图。
func BuildCard(p CardParams, img *fetch.EmbeddedImage) *layout.Node {
	children := make([]*layout.Node, 0, 3)

	if img != nil {
		children = append(children, layout.NewBox(
			fullBleed(),
			layout.NewImage(
				&layout.ImageData{Data: img.Data, MIME: img.ContentType, Fit: layout.FitCover},
				layout.BoxStyle{Width: layout.Percent(100), Height: layout.Percent(100)},
			),
		))
	}

	// 渐变遮罩：顶部与底部压暗，中段透出背景图。
	overlay := fullBleed()
	overlay.Background = layout.GradientFill(layout.ToBottom(
		layout.GradientStop{Offset: 0, Color: color.RGBA{A: 179}},
		layout.GradientStop{Offset: 0.4, Color: color.RGBA{}},
		layout.GradientStop{Offset: 1, Color: color.RGBA{A: 230}},
	))
	children = append(children, layout.NewBox(overlay))

	children = append(children, layout.NewBox(
		layout.BoxStyle{
			Direction: layout.Column,
			Justify:   layout.JustifySpaceBetween,
			Height:    layout.Percent(100),
			Padding:   layout.UniformInsets(40),
		},
		cardHeader(p),
		cardFooter(p),
	))

	return layout.NewBox(layout.BoxStyle{
		Direction:  layout.Column,
		Background: layout.SolidFill(black),
	}, children...)
}

// cardHeader 构造页眉：眉题 “NOW PLAYING” 与主标题。
func cardHeader(p CardParams) *layout.Node {
	return layout.NewBox(
		layout.BoxStyle{Justify: layout.JustifySpaceBetween, AlignItems: layout.AlignStart},
		layout.NewBox(
			layout.BoxStyle{Direction: layout.Column, Gap: 8},
			layout.NewText("NOW PLAYING", cardText(24, white, 0.8)),
			layout.NewText(p.MainTitle, cardText(36, white, 1)),
		),
	)
}

// cardFooter 构造底部信息区：类型/年份胶囊、大标题、简介与评分行。
func cardFooter(p CardParams) *layout.Node {
	genrePill := layout.NewBox(
		layout.BoxStyle{
			AlignItems:   layout.AlignCenter,
			AlignSelf:    layout.AlignStart,
			Gap:          12,
			Padding:      layout.SymmetricInsets(12, 24),
			Background:   layout.SolidFill(layout.RGBA(0xff, 0xff, 0xff, 26)),
			BorderRadius: 9999,
			BorderWidth:  1,
			BorderColor:  layout.RGBA(0xff, 0xff, 0xff, 51),
		},
		layout.NewText(p.Genre, cardText(22, white, 1)),
		layout.NewText("-", cardText(22, white, 0.5)),
		layout.NewText(strconv.Itoa(p.Year), cardText(22, white, 1)),
	)

	description := cardText(28, white, 0.9)
	description.LineHeight = 1.5
	description.MaxWidth = 900

	return layout.NewBox(
		layout.BoxStyle{Direction: layout.Column, Gap: 16},
		genrePill,
		layout.NewText(p.Title, cardText(72, white, 1)),
		layout.NewText(p.Description, description),
		ratingRow(p.Rating),
	)
}

// ratingRow 构造评分行：星形 + “{rating}/10” 胶囊与固定的观众评分说明。
func ratingRow(rating int) *layout.Node {
	star := layout.NewPath(
		&layout.PathData{
			D:           starPathD,
			ViewBox:     24,
			Fill:        &starYellow,
			Stroke:      &starYellow,
			StrokeWidth: 2,
		},
		layout.BoxStyle{Width: layout.Px(32), Height: layout.Px(32)},
	)

	ratingPill := layout.NewBox(
		layout.BoxStyle{
			AlignItems:   layout.AlignCenter,
			Gap:          8,
			Padding:      layout.SymmetricInsets(8, 16),
			Background:   layout.SolidFill(layout.RGBA(250, 204, 21, 51)),
			BorderRadius: 9999,
			BorderWidth:  1,
			BorderColor:  layout.RGBA(250, 204, 21, 77),
		},
		star,
		layout.NewText(strconv.Itoa(rating)+"/10", cardText(24, starYellow, 1)),
	)

	return layout.NewBox(
		layout.BoxStyle{AlignItems: layout.AlignCenter, Gap: 16},
		ratingPill,
		layout.NewText("Audience Score", cardText(22, white, 0.6)),
	)
}

// fullBleed 返回覆盖父盒子的绝对定位样式。
func fullBleed() layout.BoxStyle {
	return layout.BoxStyle{
		Position: layout.PositionAbsolute,
		Top:      layout.Px(0),
		Right:    layout.Px(0),
		Bottom:   layout.Px(0),
		Left:     layout.Px(0),
	}
}
