package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/souqline/catalog-backend/pkg/config"
	"github.com/souqline/catalog-backend/pkg/db/models"
)

// FlexFloat decodes from a JSON number or numeric string. Unparseable or
// null input decodes to zero instead of failing, matching how legacy clients
// send prices.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt decodes from a JSON number or numeric string, truncating
// fractional input and treating anything unparseable as zero.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (i *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*i = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*i = 0
		return nil
	}
	*i = FlexInt(int(v))
	return nil
}

// CreateInput is the create-product request body. Only master_code and
// item_name are required; everything else falls back to configured defaults.
type CreateInput struct {
	MasterCode  string    `json:"master_code"`
	ItemName    string    `json:"item_name"`
	ItemCode    string    `json:"item_code"`
	Color       string    `json:"color"`
	Size        string    `json:"size"`
	Description string    `json:"description"`
	GroupName   string    `json:"group_name"`
	KindName    string    `json:"kind_name"`
	Images      string    `json:"images"`
	OutPrice    FlexFloat `json:"out_price"`
	AvPrice     FlexFloat `json:"av_price"`
	CurQty      FlexInt   `json:"cur_qty"`
	StorID      FlexInt   `json:"stor_id"`
	TypeID      FlexInt   `json:"type_id"`
}

// UniqueID derives the row key from the model code and its location/type
// discriminators. Two creates with the same triple collide here, which is
// what the unique index enforces.
func (in CreateInput) UniqueID() string {
	return fmt.Sprintf("%s-%d-%d", in.MasterCode, int(in.TypeID), int(in.StorID))
}

// BuildVariantRow materializes a full row from the input, applying the
// configured localized defaults and the av_price → out_price fallback. The
// legacy inventory columns are pinned to their historical constants.
func BuildVariantRow(in CreateInput, cfg config.CatalogConfig) *models.VariantRow {
	avPrice := float64(in.AvPrice)
	if avPrice == 0 {
		avPrice = float64(in.OutPrice)
	}

	groupName := firstNonEmpty(in.GroupName, cfg.DefaultGroupName)

	return &models.VariantRow{
		UniqueID:    in.UniqueID(),
		MasterCode:  in.MasterCode,
		ItemCode:    firstNonEmpty(in.ItemCode, in.MasterCode),
		ItemName:    in.ItemName,
		Color:       firstNonEmpty(in.Color, cfg.DefaultColor),
		Size:        firstNonEmpty(in.Size, cfg.DefaultSize),
		KindName:    firstNonEmpty(in.KindName, cfg.DefaultKindName),
		GroupName:   groupName,
		Description: in.Description,
		Images:      in.Images,
		OutPrice:    decimal.NewFromFloat(float64(in.OutPrice)),
		AvPrice:     decimal.NewFromFloat(avPrice),
		CurQty:      int(in.CurQty),
		StorID:      int(in.StorID),
		TypeID:      int(in.TypeID),

		UnitConvert: 1.0,
		IsBasicUnit: true,
		UnitName:    cfg.DefaultUnitName,
		ClassName:   groupName,
		PlaceName:   cfg.DefaultPlaceName,
	}
}
