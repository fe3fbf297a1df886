package layout

import (
	"strings"
	"time"
	"unicode/utf8"
)

// runeMeasure 假设每个字符宽 1mm，便于精确断言折行结果。
func runeMeasure(s string) float64 { return float64(utf8.RuneCountInString(s)) }

// stubTypesetter 是一个最小实现，仅用于测试，避免引入 renderer 造成循环依赖。
type stubTypesetter struct {
	calls []string
	fail  map[string]error
}

func (s *stubTypesetter) LayoutLines(content string, width float64, font FontSpec, fontSize float64) ([]TextLine, error) {
	s.calls = append(s.calls, font.Name)
	for needle, err := range s.fail {
		if strings.Contains(content, needle) {
			return nil, err
		}
	}
	return Wrap(content, width, runeMeasure), nil
}

func sampleRecord(name string) Record {
	return Record{
		ProductName: name,
		Price:       240,
		NetWeight:   100,
		MfgDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ExpDate:     time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		BatchNo:     "BKK01032410",
		Ingredients: "Cashew, sugar, ghee",
		Nutrition:   "Energy 520kcal\nProtein 12g",
		Allergens:   "Contains tree nuts",
	}
}

func findText(c Cell, f Field, heading bool) (TextBox, bool) {
	for _, tb := range c.Texts {
		if tb.Field == f && tb.Heading == heading {
			return tb, true
		}
	}
	return TextBox{}, false
}
