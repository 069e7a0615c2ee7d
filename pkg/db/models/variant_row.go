package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariantRow is one physical SKU+color+size+location combination, the raw
// unit the catalog read path groups into model products. Rows are inserted by
// the create endpoint and never updated or deleted by this service.
type VariantRow struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement"`
	UniqueID   string `gorm:"column:unique_id;not null;uniqueIndex"`
	MasterCode string `gorm:"column:master_code;index"`
	ItemCode   string `gorm:"column:item_code"`
	ItemName   string `gorm:"column:item_name;index"`

	Color string `gorm:"column:color"`
	Size  string `gorm:"column:size"`

	KindName    string `gorm:"column:kind_name"`
	GroupName   string `gorm:"column:group_name"`
	Category    string `gorm:"column:category"`
	Description string `gorm:"column:description"`
	Images      string `gorm:"column:images"`

	OutPrice decimal.Decimal `gorm:"column:out_price;type:numeric(12,2);not null;default:0"`
	AvPrice  decimal.Decimal `gorm:"column:av_price;type:numeric(12,2);not null;default:0"`
	CurQty   int             `gorm:"column:cur_qty;not null;default:0"`

	StorID int `gorm:"column:stor_id;not null;default:0"`
	TypeID int `gorm:"column:type_id;not null;default:0"`

	// Legacy inventory-system columns carried through from the source table.
	ItemID      int     `gorm:"column:item_id;not null;default:0"`
	UnitID      int     `gorm:"column:unit_id;not null;default:0"`
	UnitConvert float64 `gorm:"column:unit_convert;not null;default:1"`
	MultiUnit   bool    `gorm:"column:multi_unit;not null;default:false"`
	MultiType   bool    `gorm:"column:multi_type;not null;default:false"`
	UnitDef1ID  int     `gorm:"column:unit_def1_id;not null;default:0"`
	GroupID     int     `gorm:"column:group_id;not null;default:0"`
	ClassID     int     `gorm:"column:class_id;not null;default:0"`
	IsBasicUnit bool    `gorm:"column:is_basic_unit;not null;default:true"`
	KindID      int     `gorm:"column:kind_id;not null;default:0"`
	PlaceID     int     `gorm:"column:place_id;not null;default:0"`
	UnitNameID  int     `gorm:"column:unit_name_id;not null;default:0"`
	UnitName    string  `gorm:"column:unit_name"`
	ClassName   string  `gorm:"column:class_name"`
	PlaceName   string  `gorm:"column:place_name"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (VariantRow) TableName() string {
	return "variant_rows"
}
