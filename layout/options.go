package layout

// BuildOptions 配置布局阶段所需的依赖，例如排版后端。
type BuildOptions struct {
	Typesetter Typesetter
}

// Typesetter 负责根据字体与宽度约束将文本拆成可绘制的行。
// width 为像素；返回的每行宽度同样以像素计。
type Typesetter interface {
	LayoutLines(content string, width float64, style TextStyle) ([]TextLine, error)
}
