package catalog

import (
	"strings"

	"github.com/souqline/catalog-backend/pkg/db/models"
)

// defaultColor is the grouping key for rows with no color of their own.
const defaultColor = "Default"

// GroupOptions carries the substitution values grouping applies to sparse
// rows.
type GroupOptions struct {
	PlaceholderImage   string
	DefaultDescription string
}

// GroupRows collapses a flat, item_name-ordered row sequence into model
// products: one Product per master_code in first-seen order, one Variant per
// distinct color, sizes collected per variant in first-seen order. The first
// row seen for a model supplies its descriptive fields and price; the first
// row seen for a color supplies the variant's id, image, quantity and
// location. Quantities are NOT summed across a variant's sizes; downstream
// consumers depend on the first-row value.
//
// Rows without a master_code are skipped. Single pass, O(1) lookups per row.
func GroupRows(rows []models.VariantRow, opts GroupOptions) []*Product {
	byModel := make(map[string]*Product, len(rows))
	byColor := make(map[string]map[string]*Variant, len(rows))
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		masterCode := row.MasterCode
		if masterCode == "" {
			continue
		}

		color := row.Color
		if color == "" {
			color = defaultColor
		}

		product, ok := byModel[masterCode]
		if !ok {
			product = &Product{
				ModelID:     masterCode,
				MasterCode:  masterCode,
				Price:       row.OutPrice,
				Category:    row.GroupName,
				Description: firstNonEmpty(row.ItemName, row.KindName, opts.DefaultDescription),
				GroupName:   row.GroupName,
				KindName:    row.KindName,
				ItemName:    row.ItemName,
				ItemCode:    row.ItemCode,
				CurQty:      row.CurQty,
			}
			byModel[masterCode] = product
			byColor[masterCode] = make(map[string]*Variant)
			order = append(order, masterCode)
		}

		variant, ok := byColor[masterCode][color]
		if !ok {
			imageURL := strings.TrimSpace(row.Images)
			if imageURL == "" {
				imageURL = opts.PlaceholderImage
			}
			variant = &Variant{
				ID:       row.UniqueID,
				ItemCode: row.ItemCode,
				Color:    color,
				ImageURL: imageURL,
				Sizes:    []string{},
				CurQty:   row.CurQty,
				StorID:   row.StorID,
			}
			byColor[masterCode][color] = variant
			product.Variants = append(product.Variants, variant)
		}

		if row.Size != "" && !containsString(variant.Sizes, row.Size) {
			variant.Sizes = append(variant.Sizes, row.Size)
		}
	}

	products := make([]*Product, 0, len(order))
	for _, masterCode := range order {
		product := byModel[masterCode]
		if len(product.Variants) == 0 {
			continue
		}
		products = append(products, product)
	}
	return products
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func containsString(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
