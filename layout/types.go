package layout

// 该文件定义排版结果，供分页驱动、渲染器与调试 JSON 共用。坐标均为页面坐标（mm，左上角为原点）。

// Result 保存排版后的全部页面。
type Result struct {
	Pages []Page       `json:"pages"`
	Fonts FontSet      `json:"fonts"`
	Meta  DocumentMeta `json:"meta"`
}

// CellCount 返回所有页面上的贴纸总数。
func (r *Result) CellCount() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, p := range r.Pages {
		n += len(p.Cells)
	}
	return n
}

// Page 是一张物理页面。
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Cells  []Cell  `json:"cells"`
}

// Cell 是一张贴纸在页面上的占位：标签机模式下即整页，sheet 模式下为网格中的一格。
type Cell struct {
	Index      int        `json:"index"` // 对应输入记录的下标
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Content    Rect       `json:"content"` // 扣除标签边距后的内容区（页面坐标）
	Background *ImageBox  `json:"background,omitempty"`
	Texts      []TextBox  `json:"texts"`
	Images     []ImageBox `json:"images,omitempty"`
}

// Origin 返回格子左上角。
func (c Cell) Origin() Point { return Point{X: c.X, Y: c.Y} }

// TextBox 表示一个已经完成折行与定位的文本块。
type TextBox struct {
	Field    Field      `json:"field"`
	Heading  bool       `json:"heading,omitempty"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	FontSize float64    `json:"fontSize"` // pt
	Bold     bool       `json:"bold,omitempty"`
	Lines    []TextLine `json:"lines"`
	Height   float64    `json:"height"`
}

// TextLine 表示排版后的一行文本及其宽度（mm）。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// ImageBox 用于描述图片位置与尺寸（mm）。
type ImageBox struct {
	Field  Field   `json:"field,omitempty"`
	Path   string  `json:"path"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FontSpec 选择一个字体资源：Regular 或 Bold。
type FontSpec struct {
	Name string `json:"name"`
	Bold bool   `json:"bold"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
