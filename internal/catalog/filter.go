package catalog

import "strings"

// MatchProduct decides whether an already-grouped product survives the
// aggregate-level filters. Unlike the row-level predicate, the three
// conditions here are ANDed: a selected category must match, then a selected
// sub-category must also match, then a search term must also match. The
// search condition additionally spans master_code and every variant color.
// Empty field values are never compared.
func MatchProduct(p *Product, categoryName, sub, search string) bool {
	if categoryName != "" {
		if !anyContainsFold(categoryName, p.Category, p.GroupName, p.KindName, p.ItemName) {
			return false
		}
	}

	if sub != "" {
		if !anyContainsFold(sub, p.Description, p.Category, p.GroupName, p.KindName, p.ItemName) {
			return false
		}
	}

	if search != "" {
		fields := []string{p.Description, p.Category, p.GroupName, p.KindName, p.ItemName, p.MasterCode}
		for _, v := range p.Variants {
			fields = append(fields, v.Color)
		}
		if !anyContainsFold(search, fields...) {
			return false
		}
	}

	return true
}

// FilterProducts applies MatchProduct over a product list, preserving order.
func FilterProducts(products []*Product, categoryName, sub, search string) []*Product {
	matched := make([]*Product, 0, len(products))
	for _, p := range products {
		if MatchProduct(p, categoryName, sub, search) {
			matched = append(matched, p)
		}
	}
	return matched
}

func anyContainsFold(term string, fields ...string) bool {
	needle := strings.ToLower(term)
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
