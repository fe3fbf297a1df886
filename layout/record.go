package layout

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Record 是一张贴纸要打印的商品数据，构造后不再修改。
type Record struct {
	ProductName string    `json:"productName"`
	Price       float64   `json:"price"`
	NetWeight   float64   `json:"netWeight"`
	WeightUnit  string    `json:"weightUnit,omitempty"` // 为空时按克（g）处理
	MfgDate     time.Time `json:"mfgDate"`
	ExpDate     time.Time `json:"expDate"`
	BatchNo     string    `json:"batchNo"`
	Ingredients string    `json:"ingredients"`
	Nutrition   string    `json:"nutrition"`
	Allergens   string    `json:"allergens"`
}

// Unit 返回净重单位，默认 g。
func (r Record) Unit() string {
	if strings.TrimSpace(r.WeightUnit) == "" {
		return "g"
	}
	return r.WeightUnit
}

// Repeat 将同一商品展开为 n 张相同的贴纸。
func Repeat(r Record, n int) []Record {
	if n <= 0 {
		return nil
	}
	out := make([]Record, n)
	for i := range out {
		out[i] = r
	}
	return out
}

// ExpiryFrom 根据生产日期与保质期天数计算到期日。
func ExpiryFrom(mfg time.Time, shelfLifeDays int) time.Time {
	return mfg.AddDate(0, 0, shelfLifeDays)
}

// BatchNumber 生成批号：B + 商品名各词首字母（大写）+ ddmmyyHH。
func BatchNumber(productName string, at time.Time) string {
	var initials strings.Builder
	for _, word := range strings.Fields(productName) {
		r := []rune(word)[0]
		initials.WriteRune(unicode.ToUpper(r))
	}
	return fmt.Sprintf("B%s%s", initials.String(), at.Format("02010615"))
}
