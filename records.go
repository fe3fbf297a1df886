package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ByLCY/stickerpress/layout"
)

// recordInput 是记录文件中的一项。日期写作 YYYY-MM-DD 或 DD-MM-YYYY；
// 省略 expDate 时由 shelfLifeDays 推算，省略 batchNo 时按商品名与生产时间生成。
type recordInput struct {
	ProductName   string  `json:"productName"`
	Price         float64 `json:"price"`
	NetWeight     float64 `json:"netWeight"`
	WeightUnit    string  `json:"weightUnit"`
	MfgDate       string  `json:"mfgDate"`
	ExpDate       string  `json:"expDate"`
	ShelfLifeDays int     `json:"shelfLifeDays"`
	BatchNo       string  `json:"batchNo"`
	Ingredients   string  `json:"ingredients"`
	Nutrition     string  `json:"nutrition"`
	Allergens     string  `json:"allergens"`
	Quantity      int     `json:"quantity"`
}

var dateLayouts = []string{"2006-01-02", layout.DateLayout, time.RFC3339}

func readRecords(path string, now time.Time) ([]layout.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取记录文件 %s 失败: %w", path, err)
	}
	return parseRecords(data, now)
}

// parseRecords 把记录文件展开为逐张贴纸的记录，quantity 缺省为 1。
func parseRecords(data []byte, now time.Time) ([]layout.Record, error) {
	var inputs []recordInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("解析记录 JSON 失败: %w", err)
	}
	var out []layout.Record
	for i, in := range inputs {
		rec, err := in.toRecord(now)
		if err != nil {
			return nil, fmt.Errorf("第 %d 条记录: %w", i+1, err)
		}
		qty := in.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return nil, fmt.Errorf("第 %d 条记录: quantity 不能为负数", i+1)
		}
		out = append(out, layout.Repeat(rec, qty)...)
	}
	return out, nil
}

func (in recordInput) toRecord(now time.Time) (layout.Record, error) {
	mfg := now
	if in.MfgDate != "" {
		t, err := parseDate(in.MfgDate)
		if err != nil {
			return layout.Record{}, err
		}
		mfg = t
	}
	var exp time.Time
	switch {
	case in.ExpDate != "":
		t, err := parseDate(in.ExpDate)
		if err != nil {
			return layout.Record{}, err
		}
		exp = t
	case in.ShelfLifeDays > 0:
		exp = layout.ExpiryFrom(mfg, in.ShelfLifeDays)
	}
	batch := in.BatchNo
	if batch == "" {
		batch = layout.BatchNumber(in.ProductName, now)
	}
	return layout.Record{
		ProductName: in.ProductName,
		Price:       in.Price,
		NetWeight:   in.NetWeight,
		WeightUnit:  in.WeightUnit,
		MfgDate:     mfg,
		ExpDate:     exp,
		BatchNo:     batch,
		Ingredients: in.Ingredients,
		Nutrition:   in.Nutrition,
		Allergens:   in.Allergens,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法识别的日期 %q", s)
}
