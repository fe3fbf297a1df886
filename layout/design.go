package layout

// 该文件定义贴纸设计模板。设计由外部编辑器维护，排版过程中只读。

// PrinterMode 决定介质布局策略。
type PrinterMode string

const (
	PrinterLabel PrinterMode = "label" // 卷筒标签机：一页一张贴纸
	PrinterSheet PrinterMode = "sheet" // 普通纸张：多张贴纸网格排布
	// PrinterNormal 是 sheet 的别名，沿用门店系统里的叫法。
	PrinterNormal PrinterMode = "normal"
)

// Canonical 将别名归一，normal 视为 sheet。
func (m PrinterMode) Canonical() PrinterMode {
	if m == PrinterNormal {
		return PrinterSheet
	}
	return m
}

// PaperSize 是 sheet 模式下的纸张规格。
type PaperSize string

const (
	PaperA4     PaperSize = "A4"
	PaperA5     PaperSize = "A5"
	PaperCustom PaperSize = "custom"
)

// Orientation 只在 sheet 模式下生效。
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Field 是设计中可定位的逻辑字段。
type Field string

const (
	FieldProductName Field = "product_name"
	FieldMRP         Field = "mrp"
	FieldNetWeight   Field = "net_weight"
	FieldMfgDate     Field = "mfg_date"
	FieldExpDate     Field = "exp_date"
	FieldBatchNo     Field = "batch_no"
	FieldIngredients Field = "ingredients"
	FieldNutrition   Field = "nutritional_facts"
	FieldAllergen    Field = "allergen_info"

	FieldStoreLogo    Field = "store_logo"
	FieldStoreName    Field = "store_name"
	FieldStoreAddress Field = "store_address"
	FieldStorePhone   Field = "store_phone"
	FieldStoreTaxID   Field = "store_tax_id"
	FieldStoreLicense Field = "store_license"
	FieldStoreEmail   Field = "store_email"
)

// ProductFields 按绘制顺序列出每张贴纸必须具备的字段。
var ProductFields = []Field{
	FieldProductName,
	FieldMRP,
	FieldNetWeight,
	FieldMfgDate,
	FieldExpDate,
	FieldBatchNo,
	FieldIngredients,
	FieldNutrition,
	FieldAllergen,
}

// StoreFields 列出可选的店铺信息字段。
var StoreFields = []Field{
	FieldStoreLogo,
	FieldStoreName,
	FieldStoreAddress,
	FieldStorePhone,
	FieldStoreTaxID,
	FieldStoreLicense,
	FieldStoreEmail,
}

// Heading 是三个可选的小节标题。
type Heading string

const (
	HeadingNutrition   Heading = "nutrition"
	HeadingAllergen    Heading = "allergen"
	HeadingIngredients Heading = "ingredients"
)

// headingFields 记录标题与正文字段的对应关系。
var headingFields = map[Field]Heading{
	FieldNutrition:   HeadingNutrition,
	FieldAllergen:    HeadingAllergen,
	FieldIngredients: HeadingIngredients,
}

// HeadingFor 返回字段对应的小节标题。
func HeadingFor(f Field) (Heading, bool) {
	h, ok := headingFields[f]
	return h, ok
}

// LabelSize 以毫米为单位描述单张贴纸。
type LabelSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin float64 `json:"margin"`
}

// Paper 描述 sheet 模式的纸张。Width/Height 仅在 custom 时使用。
type Paper struct {
	Size        PaperSize   `json:"size"`
	Width       float64     `json:"width,omitempty"`
	Height      float64     `json:"height,omitempty"`
	Orientation Orientation `json:"orientation"`
	Margin      float64     `json:"margin"` // 页面级边距，决定可写区域
}

// Placement 是字段在内容区内的锚点（mm），FontSize 为 0 时回落到设计默认字号（pt）。
type Placement struct {
	Top      float64 `json:"top"`
	Left     float64 `json:"left"`
	MaxWidth float64 `json:"maxWidth"`
	FontSize float64 `json:"fontSize,omitempty"`
	Bold     bool    `json:"bold,omitempty"`
	Height   float64 `json:"height,omitempty"`   // 仅图片字段（logo）使用
	Template string  `json:"template,omitempty"` // 覆盖默认文本模板
}

// HeadingSpec 描述一个可选标题。
type HeadingSpec struct {
	Enabled  bool    `json:"enabled"`
	Text     string  `json:"text"`
	FontSize float64 `json:"fontSize"`
}

// Background 是可选的底图。
type Background struct {
	Path    string `json:"path"`
	Enabled bool   `json:"enabled"`
}

// FontSet 记录常规与粗体字体的资源名称。
type FontSet struct {
	Regular string `json:"regular"`
	Bold    string `json:"bold"`
}

// StoreInfo 是店铺信息块的数据，由设计来源一并提供。
type StoreInfo struct {
	Logo    string `json:"logo,omitempty"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	TaxID   string `json:"taxId,omitempty"`
	License string `json:"license,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Design 是可复用的贴纸模板。
type Design struct {
	Name            string                  `json:"name"`
	Label           LabelSize               `json:"label"`
	Printer         PrinterMode             `json:"printer"`
	Paper           Paper                   `json:"paper"`
	Placements      map[Field]Placement     `json:"placements"`
	Headings        map[Heading]HeadingSpec `json:"headings"`
	Background      Background              `json:"background"`
	ContentFontSize float64                 `json:"contentFontSize"`
	HeadingFontSize float64                 `json:"headingFontSize"`
	Fonts           FontSet                 `json:"fonts"`
	Currency        string                  `json:"currency"`
	Store           *StoreInfo              `json:"store,omitempty"`
	Meta            DocumentMeta            `json:"meta"`
}

// Default 返回与原有门店系统默认模板一致的设计（85x95mm 标签机）。
func Default() *Design {
	return &Design{
		Name:    "default",
		Label:   LabelSize{Width: 85, Height: 95, Margin: 2.5},
		Printer: PrinterLabel,
		Paper:   Paper{Size: PaperA4, Orientation: Portrait},
		Placements: map[Field]Placement{
			FieldProductName: {Top: 43, Left: 36, MaxWidth: 30, FontSize: 7, Bold: true},
			FieldMRP:         {Top: 47, Left: 36, MaxWidth: 30, FontSize: 6},
			FieldNetWeight:   {Top: 49.5, Left: 36, MaxWidth: 30},
			FieldMfgDate:     {Top: 52, Left: 36, MaxWidth: 30},
			FieldExpDate:     {Top: 54.5, Left: 36, MaxWidth: 30},
			FieldBatchNo:     {Top: 57, Left: 36, MaxWidth: 30},
			FieldIngredients: {Top: 68, Left: 36, MaxWidth: 40, FontSize: 6},
			FieldNutrition:   {Top: 50, Left: 8, MaxWidth: 30, FontSize: 6},
			FieldAllergen:    {Top: 74, Left: 8, MaxWidth: 30, FontSize: 6},
		},
		// 正文只下移 0.7 倍标题字号，默认标题须在 MaxWidth 内单行排下。
		Headings: map[Heading]HeadingSpec{
			HeadingNutrition:   {Enabled: true, Text: "Nutritional Facts:", FontSize: 8},
			HeadingAllergen:    {Enabled: true, Text: "Allergens:", FontSize: 8},
			HeadingIngredients: {Enabled: true, Text: "Ingredients:", FontSize: 8},
		},
		ContentFontSize: 6,
		HeadingFontSize: 8,
		Fonts:           FontSet{Regular: "builtin:dejavu-sans", Bold: "builtin:dejavu-sans-bold"},
		Currency:        "₹",
	}
}

// Clone 返回设计的深拷贝，便于调用方在生成期间持有不可变快照。
func (d *Design) Clone() *Design {
	if d == nil {
		return nil
	}
	out := *d
	out.Placements = make(map[Field]Placement, len(d.Placements))
	for k, v := range d.Placements {
		out.Placements[k] = v
	}
	out.Headings = make(map[Heading]HeadingSpec, len(d.Headings))
	for k, v := range d.Headings {
		out.Headings[k] = v
	}
	if d.Store != nil {
		s := *d.Store
		out.Store = &s
	}
	out.Meta.Keywords = append([]string(nil), d.Meta.Keywords...)
	return &out
}

// value 返回店铺字段对应的值。
func (s *StoreInfo) value(f Field) string {
	if s == nil {
		return ""
	}
	switch f {
	case FieldStoreLogo:
		return s.Logo
	case FieldStoreName:
		return s.Name
	case FieldStoreAddress:
		return s.Address
	case FieldStorePhone:
		return s.Phone
	case FieldStoreTaxID:
		return s.TaxID
	case FieldStoreLicense:
		return s.License
	case FieldStoreEmail:
		return s.Email
	default:
		return ""
	}
}
