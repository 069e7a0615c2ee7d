package catalog

import (
	"strconv"

	"github.com/souqline/catalog-backend/pkg/db/models"
)

// BuildCategoryTree nests categories by the sub == name convention: every
// category whose Sub equals another category's Name becomes that category's
// child. Input order is preserved; a category can appear both at the top
// level and inside its parent's children, matching the flat+nested shape
// storefront clients expect.
func BuildCategoryTree(categories []models.Category) []CategoryNode {
	nodes := make([]CategoryNode, 0, len(categories))
	for _, cat := range categories {
		node := CategoryNode{Category: cat, SubCategories: []models.Category{}}
		for _, child := range categories {
			if child.Sub != "" && child.Sub == cat.Name {
				node.SubCategories = append(node.SubCategories, child)
			}
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// ResolveCategoryName maps a raw category input to a category name. Numeric
// input is treated as a category id and resolved against the list; an
// unknown id, or any non-numeric input, falls through to the raw value so
// free-text category names keep working.
func ResolveCategoryName(categories []models.Category, raw string) string {
	if raw == "" {
		return ""
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}
	for _, cat := range categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return raw
}

// ResolveBrowseCategory maps the browse path's category input to a name.
// Non-numeric input passes through as a free-text name, but a numeric id must
// resolve to a known category: ok is false when it does not, and the browse
// yields no products instead of text-matching against the raw digits.
func ResolveBrowseCategory(categories []models.Category, raw string) (string, bool) {
	if raw == "" {
		return "", true
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return raw, true
	}
	for _, cat := range categories {
		if cat.ID == id {
			return cat.Name, true
		}
	}
	return "", false
}
