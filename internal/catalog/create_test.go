package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreateInputFlexibleNumerics(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		outPrice float64
		curQty   int
	}{
		{"numbers", `{"master_code":"A","item_name":"Tee","out_price":49.5,"cur_qty":3}`, 49.5, 3},
		{"numeric strings", `{"master_code":"A","item_name":"Tee","out_price":"49.5","cur_qty":"3"}`, 49.5, 3},
		{"fractional qty truncates", `{"master_code":"A","item_name":"Tee","cur_qty":"3.9"}`, 0, 3},
		{"garbage falls back to zero", `{"master_code":"A","item_name":"Tee","out_price":"abc","cur_qty":"xyz"}`, 0, 0},
		{"null falls back to zero", `{"master_code":"A","item_name":"Tee","out_price":null}`, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var input CreateInput
			if err := json.Unmarshal([]byte(tc.body), &input); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if float64(input.OutPrice) != tc.outPrice {
				t.Fatalf("out_price = %v, want %v", float64(input.OutPrice), tc.outPrice)
			}
			if int(input.CurQty) != tc.curQty {
				t.Fatalf("cur_qty = %d, want %d", int(input.CurQty), tc.curQty)
			}
		})
	}
}

func TestCreateInputUniqueID(t *testing.T) {
	input := CreateInput{MasterCode: "AB-1", TypeID: 4, StorID: 9}
	if got := input.UniqueID(); got != "AB-1-4-9" {
		t.Fatalf("unique_id = %q", got)
	}

	bare := CreateInput{MasterCode: "AB-1"}
	if got := bare.UniqueID(); got != "AB-1-0-0" {
		t.Fatalf("unique_id with zero discriminators = %q", got)
	}
}

func TestBuildVariantRowAvPriceFallback(t *testing.T) {
	cfg := testCatalogConfig()

	explicit := BuildVariantRow(CreateInput{MasterCode: "A", ItemName: "Tee", OutPrice: 10, AvPrice: 8}, cfg)
	if !explicit.AvPrice.Equal(decimal.NewFromInt(8)) {
		t.Fatalf("expected explicit av_price kept, got %s", explicit.AvPrice)
	}

	fallback := BuildVariantRow(CreateInput{MasterCode: "A", ItemName: "Tee", OutPrice: 10}, cfg)
	if !fallback.AvPrice.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected av_price fallback to out_price, got %s", fallback.AvPrice)
	}
}

func TestBuildVariantRowLegacyColumns(t *testing.T) {
	cfg := testCatalogConfig()

	row := BuildVariantRow(CreateInput{MasterCode: "A", ItemName: "Tee", GroupName: "Shirts"}, cfg)
	if row.UnitConvert != 1.0 || !row.IsBasicUnit {
		t.Fatalf("unexpected unit defaults: %+v", row)
	}
	if row.ClassName != "Shirts" {
		t.Fatalf("expected class_name mirrors group_name, got %q", row.ClassName)
	}
	if row.KindName != cfg.DefaultKindName {
		t.Fatalf("expected default kind_name, got %q", row.KindName)
	}
}
