package template

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/ByLCY/cardpress/layout"
)

// NamedColor 为调色板中的一个命名颜色。
type NamedColor struct {
	Name  string
	Color color.RGBA
}

// Palette 为封面强调色的固定调色板。未指定背景色时只会从这里选取。
var Palette = []NamedColor{
	{"crimson", layout.RGBA(0xdc, 0x26, 0x26, 0xff)},
	{"coral", layout.RGBA(0xf9, 0x73, 0x16, 0xff)},
	{"amber", layout.RGBA(0xf5, 0x9e, 0x0b, 0xff)},
	{"gold", layout.RGBA(0xea, 0xb3, 0x08, 0xff)},
	{"olive", layout.RGBA(0x84, 0xcc, 0x16, 0xff)},
	{"emerald", layout.RGBA(0x10, 0xb9, 0x81, 0xff)},
	{"teal", layout.RGBA(0x14, 0xb8, 0xa6, 0xff)},
	{"cyan", layout.RGBA(0x06, 0xb6, 0xd4, 0xff)},
	{"azure", layout.RGBA(0x0e, 0xa5, 0xe9, 0xff)},
	{"indigo", layout.RGBA(0x63, 0x66, 0xf1, 0xff)},
	{"violet", layout.RGBA(0x8b, 0x5c, 0xf6, 0xff)},
	{"magenta", layout.RGBA(0xd9, 0x46, 0xef, 0xff)},
	{"rose", layout.RGBA(0xf4, 0x3f, 0x5e, 0xff)},
	{"slate", layout.RGBA(0x47, 0x55, 0x69, 0xff)},
	{"charcoal", layout.RGBA(0x1f, 0x29, 0x37, 0xff)},
}

// PaletteColor 按名称查找调色板颜色。
func PaletteColor(name string) (color.RGBA, bool) {
	for _, c := range Palette {
		if c.Name == name {
			return c.Color, true
		}
	}
	return color.RGBA{}, false
}

// RandomAccent 以 seed 为随机源从调色板中均匀选取一个颜色。
// 相同的 seed 永远得到相同的颜色，便于测试固定结果。
func RandomAccent(seed int64) color.RGBA {
	rng := rand.New(rand.NewSource(seed))
	return Palette[rng.Intn(len(Palette))].Color
}

// ResolveAccent 解析封面背景色：调色板名称优先，其次十六进制颜色；
// 为空时按 seed 从调色板随机选取。无法解析的输入返回错误。
func ResolveAccent(spec string, seed int64) (color.RGBA, error) {
	if spec == "" {
		return RandomAccent(seed), nil
	}
	if c, ok := PaletteColor(spec); ok {
		return c, nil
	}
	c, err := layout.ParseHexColor(spec)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("template: 无法解析背景色 %q: %w", spec, err)
	}
	return c, nil
}
