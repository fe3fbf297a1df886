package layout

// BuildOptions 配置排版阶段所需的依赖，例如排版后端。
type BuildOptions struct {
	Typesetter Typesetter
	// MaxBatch 大于 0 时限制单次生成的记录数，超出返回 ErrBatchTooLarge。
	MaxBatch int
}

// Typesetter 负责根据字体与宽度约束将文本拆成可绘制的行。
// 约定：width 为 mm，fontSize 为 pt，返回的行宽为 mm。
type Typesetter interface {
	LayoutLines(content string, width float64, font FontSpec, fontSize float64) ([]TextLine, error)
}
