package template

import (
	"image/color"

	"github.com/ByLCY/cardpress/layout"
)

// BuildCover 将参数记录映射为封面滑页的布局树：实色强调背景、
// 顶部留白、展示字体的大写标题与右下角的 “SWIPE >>” 提示。
// 纯函数；accent 由 ResolveAccent 在参数阶段解析完成。
func BuildCover(p CoverParams, accent color.RGBA) *layout.Node {
	title := layout.TextStyle{
		Family:        DisplayFamily,
		Weight:        DisplayWeight,
		Size:          150,
		Color:         white,
		Opacity:       1,
		LineHeight:    1.05,
		LetterSpacing: 4,
		Transform:     layout.TransformUppercase,
	}

	caption := layout.TextStyle{
		Family:        DisplayFamily,
		Weight:        DisplayWeight,
		Size:          48,
		Color:         white,
		Opacity:       0.9,
		LineHeight:    1.2,
		LetterSpacing: 2,
	}

	return layout.NewBox(
		layout.BoxStyle{
			Direction:  layout.Column,
			Justify:    layout.JustifySpaceBetween,
			Padding:    layout.UniformInsets(80),
			Background: layout.SolidFill(accent),
		},
		// 顶部留白，把标题压向画面中下部
		layout.NewBox(layout.BoxStyle{Height: layout.Px(120)}),
		layout.NewText(p.Title, title),
		layout.NewBox(
			layout.BoxStyle{Justify: layout.JustifyEnd},
			layout.NewText("SWIPE >>", caption),
		),
	)
}
