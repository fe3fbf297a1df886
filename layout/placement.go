package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ByLCY/stickerpress/binding"
)

// HeadingOffsetFactor 是启用标题时正文相对 top 的下移系数（乘以标题字号）。
const HeadingOffsetFactor = 0.7

// DateLayout 是贴纸上日期的显示格式（DD-MM-YYYY）。
const DateLayout = "02-01-2006"

// defaultTemplates 是每个字段的默认文本模板。
var defaultTemplates = map[Field]string{
	FieldProductName:  "${product_name}",
	FieldMRP:          "MRP: ${currency}${price}   (${currency}${unit_price}/${weight_unit})",
	FieldNetWeight:    "Net Weight: ${net_weight}${weight_unit}",
	FieldMfgDate:      "MFG Date: ${mfg_date}",
	FieldExpDate:      "EXP Date: ${exp_date}",
	FieldBatchNo:      "Batch No: ${batch_no}",
	FieldIngredients:  "${ingredients}",
	FieldNutrition:    "${nutrition}",
	FieldAllergen:     "${allergens}",
	FieldStoreName:    "${store.name}",
	FieldStoreAddress: "${store.address}",
	FieldStorePhone:   "Ph: ${store.phone}",
	FieldStoreTaxID:   "GSTIN: ${store.tax_id}",
	FieldStoreLicense: "FSSAI Lic. No: ${store.license}",
	FieldStoreEmail:   "${store.email}",
}

// priceWithoutUnit 在净重为 0 时使用，无法计算单价。
const priceWithoutUnit = "MRP: ${currency}${price}"

// Element 是单个字段在内容区内的绘制描述。坐标相对于内容区左上角（mm），字号为 pt。
type Element struct {
	Field    Field
	Text     string
	X        float64
	Y        float64
	MaxWidth float64
	FontSize float64
	Bold     bool
	// Image 非空时该元素是图片（店铺 logo），Height 为图片高度（mm）。
	Image   string
	Height  float64
	Heading *Element
}

// Resolve 计算一个字段的文本与锚点。缺少定位信息时返回 ErrMissingPlacement。
func Resolve(d *Design, rec Record, field Field) (Element, error) {
	p, ok := d.Placements[field]
	if !ok {
		return Element{}, fmt.Errorf("%w: %s", ErrMissingPlacement, field)
	}
	el := Element{
		Field:    field,
		X:        p.Left,
		Y:        p.Top,
		MaxWidth: p.MaxWidth,
		FontSize: p.FontSize,
		Bold:     p.Bold,
	}
	if el.FontSize <= 0 {
		el.FontSize = d.ContentFontSize
	}

	if field == FieldStoreLogo {
		el.Image = d.Store.value(FieldStoreLogo)
		el.Height = p.Height
		if el.Height <= 0 {
			el.Height = p.MaxWidth
		}
		return el, nil
	}

	el.Text = binding.Interpolate(templateFor(field, p, rec), TemplateValues(d, rec))

	if h, ok := HeadingFor(field); ok {
		if spec := d.Headings[h]; spec.Enabled {
			size := spec.FontSize
			if size <= 0 {
				size = d.HeadingFontSize
			}
			el.Heading = &Element{
				Field:    field,
				Text:     spec.Text,
				X:        p.Left,
				Y:        p.Top,
				MaxWidth: p.MaxWidth,
				FontSize: size,
				Bold:     true,
			}
			el.Y = p.Top + size*HeadingOffsetFactor
		}
	}
	return el, nil
}

// ResolveAll 按固定顺序解析一张贴纸的全部元素：九个商品字段必须齐全；
// 店铺字段仅在设计携带了对应店铺数据时绘制。
func ResolveAll(d *Design, rec Record) ([]Element, error) {
	out := make([]Element, 0, len(ProductFields)+len(StoreFields))
	for _, f := range ProductFields {
		el, err := Resolve(d, rec, f)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	if d.Store == nil {
		return out, nil
	}
	for _, f := range StoreFields {
		if strings.TrimSpace(d.Store.value(f)) == "" {
			continue
		}
		el, err := Resolve(d, rec, f)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

func templateFor(field Field, p Placement, rec Record) string {
	if p.Template != "" {
		return p.Template
	}
	if field == FieldMRP && rec.NetWeight <= 0 {
		return priceWithoutUnit
	}
	return defaultTemplates[field]
}

// TemplateValues 返回模板可引用的全部取值。
func TemplateValues(d *Design, rec Record) map[string]any {
	values := map[string]any{
		"product_name": rec.ProductName,
		"currency":     d.Currency,
		"price":        FormatMoney(rec.Price),
		"unit_price":   "",
		"net_weight":   formatNumber(rec.NetWeight),
		"weight_unit":  rec.Unit(),
		"mfg_date":     FormatDate(rec.MfgDate),
		"exp_date":     FormatDate(rec.ExpDate),
		"batch_no":     rec.BatchNo,
		"ingredients":  rec.Ingredients,
		"nutrition":    rec.Nutrition,
		"allergens":    rec.Allergens,
	}
	if up, ok := UnitPrice(rec.Price, rec.NetWeight); ok {
		values["unit_price"] = FormatMoney(up)
	}
	store := map[string]any{}
	if s := d.Store; s != nil {
		store["name"] = s.Name
		store["address"] = s.Address
		store["phone"] = s.Phone
		store["tax_id"] = s.TaxID
		store["license"] = s.License
		store["email"] = s.Email
	}
	values["store"] = store
	return values
}

// UnitPrice 返回每单位净重的价格，按两位小数四舍五入（half-up）。
func UnitPrice(price, netWeight float64) (float64, bool) {
	if netWeight <= 0 || math.IsNaN(netWeight) || math.IsInf(netWeight, 0) {
		return 0, false
	}
	return RoundHalfUp(price/netWeight, 2), true
}

// RoundHalfUp 以远离零的方式对 0.5 进位；加入极小偏移以抵消二进制表示误差（如 2.405）。
func RoundHalfUp(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	if v < 0 {
		return -RoundHalfUp(-v, places)
	}
	return math.Floor(v*scale+0.5+1e-9) / scale
}

// FormatMoney 以两位小数输出金额。
func FormatMoney(v float64) string {
	return strconv.FormatFloat(RoundHalfUp(v, 2), 'f', 2, 64)
}

// FormatDate 以 DD-MM-YYYY 输出日期，零值输出空串。
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
