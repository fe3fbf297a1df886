package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/ByLCY/stickerpress/binding"
	"github.com/ByLCY/stickerpress/dsl"
)

// LoadDesign 解析设计文件并转换为 Design。
func LoadDesign(r io.Reader) (*Design, error) {
	doc, err := dsl.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("解析设计文件失败: %w", err)
	}
	return DesignFromDocument(doc)
}

// DesignFromDocument 将 AST 转换为 Design。
// 字号、字体、货币与标题文本从 Default() 继承；字段定位只采用文件中声明的部分，
// 缺失的字段会在生成时报告 ErrMissingPlacement。
func DesignFromDocument(doc *dsl.Document) (*Design, error) {
	if doc == nil || doc.Block == nil {
		return nil, fmt.Errorf("设计文件为空")
	}
	d := Default()
	d.Name = doc.Name
	d.Placements = map[Field]Placement{}

	for _, st := range doc.Block.Statements {
		switch {
		case st.Assignment != nil:
			if err := applyTopAssignment(d, st.Assignment); err != nil {
				return nil, err
			}
		case st.Command != nil:
			if err := applyCommand(d, st.Command); err != nil {
				return nil, fmt.Errorf("%s: %w", st.Command.Pos, err)
			}
		}
	}

	if err := checkTemplates(d); err != nil {
		return nil, err
	}
	return d, nil
}

func applyTopAssignment(d *Design, a *dsl.Assignment) error {
	switch a.Key {
	case "currency":
		d.Currency = a.Value.Text()
	case "name":
		d.Name = a.Value.Text()
	default:
		return fmt.Errorf("%s: 未知的设置项 %s", a.Pos, a.Key)
	}
	return nil
}

func applyCommand(d *Design, cmd *dsl.Command) error {
	args := argValues(cmd.Args)
	switch cmd.Name {
	case "label":
		return applyLabel(d, args)
	case "printer":
		if len(args) != 1 {
			return fmt.Errorf("printer 需要一个参数")
		}
		switch strings.ToLower(args[0]) {
		case "label":
			d.Printer = PrinterLabel
		case "sheet", "normal":
			d.Printer = PrinterSheet
		default:
			return fmt.Errorf("未知的打印机类型 %q", args[0])
		}
	case "paper":
		return applyPaper(d, args)
	case "fonts":
		return applyFonts(d, cmd.Block)
	case "background":
		if len(args) == 0 {
			return fmt.Errorf("background 缺少图片路径")
		}
		d.Background = Background{Path: args[0], Enabled: true}
		if len(args) > 1 {
			on, err := parseSwitch(args[1])
			if err != nil {
				return err
			}
			d.Background.Enabled = on
		}
	case "field":
		return applyField(d, args, cmd.Block)
	case "heading":
		return applyHeading(d, args, cmd.Block)
	case "store":
		return applyStore(d, cmd.Block)
	case "meta":
		return applyMeta(d, cmd.Block)
	default:
		return fmt.Errorf("未知指令 %s", cmd.Name)
	}
	return nil
}

// label W H [margin M]
func applyLabel(d *Design, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("label 需要宽和高")
	}
	w, err := parseMM(args[0])
	if err != nil {
		return err
	}
	h, err := parseMM(args[1])
	if err != nil {
		return err
	}
	d.Label = LabelSize{Width: w, Height: h}
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "margin":
			if i+1 >= len(rest) {
				return fmt.Errorf("margin 缺少数值")
			}
			m, err := parseMM(rest[i+1])
			if err != nil {
				return err
			}
			d.Label.Margin = m
			i++
		default:
			return fmt.Errorf("label 不支持的参数 %q", rest[i])
		}
	}
	return nil
}

// paper A4|A5|custom [W H] [portrait|landscape] [margin M]
func applyPaper(d *Design, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("paper 缺少纸张规格")
	}
	p := Paper{Orientation: Portrait}
	rest := args[1:]
	switch strings.ToUpper(args[0]) {
	case "A4":
		p.Size = PaperA4
	case "A5":
		p.Size = PaperA5
	case "CUSTOM":
		p.Size = PaperCustom
		if len(rest) < 2 {
			return fmt.Errorf("custom 纸张需要宽和高")
		}
		var err error
		if p.Width, err = parseMM(rest[0]); err != nil {
			return err
		}
		if p.Height, err = parseMM(rest[1]); err != nil {
			return err
		}
		rest = rest[2:]
	default:
		return fmt.Errorf("暂不支持的纸张尺寸 %q", args[0])
	}
	for i := 0; i < len(rest); i++ {
		switch strings.ToLower(rest[i]) {
		case "portrait":
			p.Orientation = Portrait
		case "landscape":
			p.Orientation = Landscape
		case "margin":
			if i+1 >= len(rest) {
				return fmt.Errorf("margin 缺少数值")
			}
			m, err := parseMM(rest[i+1])
			if err != nil {
				return err
			}
			p.Margin = m
			i++
		default:
			return fmt.Errorf("paper 不支持的参数 %q", rest[i])
		}
	}
	d.Paper = p
	return nil
}

func applyFonts(d *Design, block *dsl.Block) error {
	return eachAssignment(block, func(a *dsl.Assignment) error {
		var err error
		switch a.Key {
		case "regular":
			d.Fonts.Regular = a.Value.Text()
		case "bold":
			d.Fonts.Bold = a.Value.Text()
		case "content-size":
			d.ContentFontSize, err = parsePt(a.Value.Text())
		case "heading-size":
			d.HeadingFontSize, err = parsePt(a.Value.Text())
		default:
			err = fmt.Errorf("%s: fonts 不支持的设置 %s", a.Pos, a.Key)
		}
		return err
	})
}

// field NAME top N left N max-width N [size N] [height N] [bold] [{ "template" }]
func applyField(d *Design, args []string, block *dsl.Block) error {
	if len(args) == 0 {
		return fmt.Errorf("field 缺少字段名")
	}
	field, err := parseField(args[0])
	if err != nil {
		return err
	}
	var p Placement
	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		key := strings.ToLower(rest[i])
		if key == "bold" {
			p.Bold = true
			continue
		}
		if i+1 >= len(rest) {
			return fmt.Errorf("%s 缺少数值", key)
		}
		val := rest[i+1]
		i++
		switch key {
		case "top":
			p.Top, err = parseMM(val)
		case "left":
			p.Left, err = parseMM(val)
		case "max-width", "max_width":
			p.MaxWidth, err = parseMM(val)
		case "height":
			p.Height, err = parseMM(val)
		case "size":
			p.FontSize, err = parsePt(val)
		default:
			err = fmt.Errorf("field 不支持的参数 %q", rest[i-1])
		}
		if err != nil {
			return err
		}
	}
	p.Template = blockText(block)
	d.Placements[field] = p
	return nil
}

// heading NAME on|off [size N] [{ "text" }]
func applyHeading(d *Design, args []string, block *dsl.Block) error {
	if len(args) < 2 {
		return fmt.Errorf("heading 需要名称与 on/off")
	}
	h := Heading(strings.ToLower(args[0]))
	switch h {
	case HeadingNutrition, HeadingAllergen, HeadingIngredients:
	default:
		return fmt.Errorf("未知的标题 %q", args[0])
	}
	spec := d.Headings[h]
	on, err := parseSwitch(args[1])
	if err != nil {
		return err
	}
	spec.Enabled = on
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		if rest[i] != "size" || i+1 >= len(rest) {
			return fmt.Errorf("heading 不支持的参数 %q", rest[i])
		}
		if spec.FontSize, err = parsePt(rest[i+1]); err != nil {
			return err
		}
		i++
	}
	if text := blockText(block); text != "" {
		spec.Text = text
	}
	d.Headings[h] = spec
	return nil
}

func applyStore(d *Design, block *dsl.Block) error {
	s := &StoreInfo{}
	err := eachAssignment(block, func(a *dsl.Assignment) error {
		v := a.Value.Text()
		switch a.Key {
		case "logo":
			s.Logo = v
		case "name":
			s.Name = v
		case "address":
			s.Address = v
		case "phone":
			s.Phone = v
		case "tax-id", "gst":
			s.TaxID = v
		case "license", "fssai":
			s.License = v
		case "email":
			s.Email = v
		default:
			return fmt.Errorf("%s: store 不支持的设置 %s", a.Pos, a.Key)
		}
		return nil
	})
	if err != nil {
		return err
	}
	d.Store = s
	return nil
}

func applyMeta(d *Design, block *dsl.Block) error {
	return eachAssignment(block, func(a *dsl.Assignment) error {
		switch a.Key {
		case "title":
			d.Meta.Title = a.Value.Text()
		case "author":
			d.Meta.Author = a.Value.Text()
		case "subject":
			d.Meta.Subject = a.Value.Text()
		case "creator":
			d.Meta.Creator = a.Value.Text()
		case "keywords":
			d.Meta.Keywords = valueToStringSlice(a.Value)
		default:
			return fmt.Errorf("%s: meta 不支持的设置 %s", a.Pos, a.Key)
		}
		return nil
	})
}

// checkTemplates 拒绝引用未知取值的字段模板。
func checkTemplates(d *Design) error {
	values := TemplateValues(d, Record{})
	for _, f := range append(append([]Field{}, ProductFields...), StoreFields...) {
		p, ok := d.Placements[f]
		if !ok || p.Template == "" {
			continue
		}
		if unknown := binding.Unknown(p.Template, values); len(unknown) > 0 {
			return fmt.Errorf("字段 %s 的模板引用了未知取值: %s", f, strings.Join(unknown, ", "))
		}
	}
	return nil
}

func parseField(name string) (Field, error) {
	f := Field(strings.ToLower(name))
	for _, known := range ProductFields {
		if f == known {
			return f, nil
		}
	}
	for _, known := range StoreFields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("未知字段 %q", name)
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "true", "yes", "enabled":
		return true, nil
	case "off", "false", "no", "disabled":
		return false, nil
	default:
		return false, fmt.Errorf("无法识别的开关值 %q", v)
	}
}

func parseMM(v string) (float64, error) {
	l, err := ParseLength(v)
	if err != nil {
		return 0, err
	}
	return l.ToMM(), nil
}

func parsePt(v string) (float64, error) {
	l, err := ParseLength(v)
	if err != nil {
		return 0, err
	}
	return l.ToPT(), nil
}

func argValues(args []*dsl.Lexeme) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, a.Value)
	}
	return out
}

func eachAssignment(block *dsl.Block, fn func(a *dsl.Assignment) error) error {
	if block == nil {
		return fmt.Errorf("缺少设置块")
	}
	for _, st := range block.Statements {
		if st.Assignment == nil {
			continue
		}
		if err := fn(st.Assignment); err != nil {
			return err
		}
	}
	return nil
}

func blockText(block *dsl.Block) string {
	if block == nil {
		return ""
	}
	var parts []string
	for _, st := range block.Statements {
		if st.Text != nil {
			parts = append(parts, string(st.Text.Value))
		}
	}
	return strings.Join(parts, "\n")
}

func valueToStringSlice(val *dsl.Value) []string {
	if val == nil {
		return nil
	}
	if val.Array == nil {
		return []string{val.Text()}
	}
	out := make([]string, 0, len(val.Array.Values))
	for _, v := range val.Array.Values {
		out = append(out, v.Text())
	}
	return out
}
