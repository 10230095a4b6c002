package layout

// BuildOptions 配置构建阶段所需的依赖，例如排版后端与绑定数据。
type BuildOptions struct {
	Typesetter Typesetter
	Data       any           // ${...} 占位符的数据源（解码后的 JSON）
	NewID      func() string // 为未命名的 block 生成 id，默认使用 uuid
}

// FontSpec selects a face for measuring.
type FontSpec struct {
	Weight int
	Italic bool
}

// Typesetter 负责根据字体与宽度约束将文本拆成可绘制的行。
// fontSize/lineHeight 均为逻辑像素。
type Typesetter interface {
	LayoutLines(content string, width float64, font FontSpec, fontSize, lineHeight float64) ([]TextLine, error)
}
