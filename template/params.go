package template

// 该文件定义两类模板的参数记录与默认值。参数在传输层完成合并后即不可变，
// 每次请求独立构造一份。

// 字体约定：正文模板使用 Roboto Bold，封面模板使用 Bebas Neue 展示字体。
// 启动时必须以这些族名注册字体，否则对应模板不可用。
const (
	BodyFamily  = "Roboto"
	BodyWeight  = 700
	DisplayFamily = "Bebas Neue"
	DisplayWeight = 400
)

// CardParams 为电影卡片模板的参数记录。
type CardParams struct {
	MainTitle   string
	Title       string
	Image       string // 远程图片 URL
	Rating      int    // 按原样渲染为 “{rating}/10”，不做范围裁剪
	Year        int
	Genre       string
	Description string
	Width       int
	Height      int
}

// DefaultCardParams 返回卡片模板的文档化默认值。
func DefaultCardParams() CardParams {
	return CardParams{
		MainTitle:   "Popular Movies 2026",
		Title:       "Movie Title",
		Image:       "https://images.unsplash.com/photo-1440404653325-ab127d49abc1?w=1080",
		Rating:      4,
		Year:        2026,
		Genre:       "Action",
		Description: "An amazing movie experience.",
		Width:       1080,
		Height:      1350,
	}
}

// CoverParams 为封面模板的参数记录。
// BackgroundColor 可以是十六进制颜色或调色板中的颜色名；为空时由
// AccentSeed 从固定调色板中确定性地选取强调色。
type CoverParams struct {
	Title           string
	BackgroundColor string
	Width           int
	Height          int
	AccentSeed      int64
}

// DefaultCoverParams 返回封面模板的文档化默认值。
func DefaultCoverParams() CoverParams {
	return CoverParams{
		Title:  "Movie Title",
		Width:  1080,
		Height: 1350,
	}
}
