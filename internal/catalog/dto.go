package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/souqline/catalog-backend/pkg/db/models"
	"github.com/souqline/catalog-backend/pkg/pagination"
)

// Variant is one color of a model product. Field values come from the first
// row seen for that color during grouping; Sizes collects the distinct sizes
// across rows in first-seen order.
type Variant struct {
	ID       string   `json:"id"`
	ItemCode string   `json:"itemCode"`
	Color    string   `json:"color"`
	ImageURL string   `json:"imageUrl"`
	Sizes    []string `json:"sizes"`
	CurQty   int      `json:"cur_qty"`
	StorID   int      `json:"stor_id"`
}

// Product is the ephemeral aggregate returned to storefront clients, one per
// distinct master_code. Descriptive fields copy the first row seen for the
// model.
type Product struct {
	ModelID     string          `json:"modelId"`
	MasterCode  string          `json:"master_code"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	GroupName   string          `json:"group_name"`
	KindName    string          `json:"kind_name"`
	ItemName    string          `json:"item_name"`
	ItemCode    string          `json:"item_code"`
	CurQty      int             `json:"cur_qty"`
	Variants    []*Variant      `json:"variants"`
}

// CategoryNode is a category plus its direct children, nested by the
// sub == name convention.
type CategoryNode struct {
	models.Category
	SubCategories []models.Category `json:"sub_categories"`
}

// Stats carries read-path diagnostics mirrored into the response envelope.
type Stats struct {
	TotalRawProducts     int  `json:"totalRawProducts"`
	TotalGroupedProducts int  `json:"totalGroupedProducts"`
	FilteredByCategory   bool `json:"filteredByCategory"`
	FilteredBySub        bool `json:"filteredBySub"`
	FilteredBySearch     bool `json:"filteredBySearch"`
}

// Filters echoes the effective filters back to the caller. Category holds the
// resolved name when the input was a numeric id.
type Filters struct {
	Category string `json:"category"`
	Sub      string `json:"sub"`
	Search   string `json:"search"`
}

// CatalogResult is the full read-path payload.
type CatalogResult struct {
	Products   []*Product      `json:"products"`
	Categories []CategoryNode  `json:"categories"`
	Pagination pagination.Meta `json:"pagination"`
	Stats      Stats           `json:"stats"`
	Filters    Filters         `json:"filters"`
}
