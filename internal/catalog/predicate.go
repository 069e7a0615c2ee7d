package catalog

import (
	"fmt"
	"strings"

	"github.com/souqline/catalog-backend/pkg/db/models"
)

// Field enumerates the variant-row text columns the catalog filters over.
type Field string

const (
	FieldItemName    Field = "item_name"
	FieldItemCode    Field = "item_code"
	FieldMasterCode  Field = "master_code"
	FieldColor       Field = "color"
	FieldDescription Field = "description"
	FieldGroupName   Field = "group_name"
	FieldKindName    Field = "kind_name"
	FieldCategory    Field = "category"
)

// Column returns the SQL column name for the field.
func (f Field) Column() string {
	return string(f)
}

// Clause is a single case-insensitive substring condition.
type Clause struct {
	Field Field
	Term  string
}

// Predicate is the row-level filter the store adapter compiles into a query.
// Clauses in Any are OR'd together: one matching clause admits the row.
type Predicate struct {
	InStockOnly bool
	Any         []Clause
}

// BuildRowPredicate builds the read-path predicate from the raw filter
// inputs. All active filters contribute to a single OR-list, so combining
// category with sub or search widens the match set instead of narrowing it.
// That union behavior is load-bearing for existing storefront clients.
func BuildRowPredicate(categoryName, sub, search string) Predicate {
	pred := Predicate{InStockOnly: true}

	if categoryName != "" {
		pred.Any = append(pred.Any,
			Clause{Field: FieldGroupName, Term: categoryName},
			Clause{Field: FieldKindName, Term: categoryName},
			Clause{Field: FieldItemName, Term: categoryName},
			Clause{Field: FieldCategory, Term: categoryName},
		)
	}

	if sub != "" {
		pred.Any = append(pred.Any,
			Clause{Field: FieldDescription, Term: sub},
			Clause{Field: FieldKindName, Term: sub},
			Clause{Field: FieldGroupName, Term: sub},
		)
	}

	if search != "" {
		pred.Any = append(pred.Any,
			Clause{Field: FieldItemName, Term: search},
			Clause{Field: FieldItemCode, Term: search},
			Clause{Field: FieldMasterCode, Term: search},
			Clause{Field: FieldColor, Term: search},
			Clause{Field: FieldDescription, Term: search},
		)
	}

	return pred
}

// likeEscaper neutralizes LIKE wildcards in filter terms. Terms must match
// as literal substrings, so % and _ in user input are escaped along with the
// escape character itself.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Compile renders the predicate as a SQL condition with placeholder args.
// LOWER + LIKE ESCAPE keeps it portable across postgres and the sqlite test
// driver while matching terms literally, the same way Matches does.
func (p Predicate) Compile() (string, []any) {
	var (
		parts []string
		args  []any
	)

	if p.InStockOnly {
		parts = append(parts, "cur_qty > ?")
		args = append(args, 0)
	}

	if len(p.Any) > 0 {
		ors := make([]string, 0, len(p.Any))
		for _, c := range p.Any {
			ors = append(ors, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, c.Field.Column()))
			args = append(args, "%"+likeEscaper.Replace(strings.ToLower(c.Term))+"%")
		}
		parts = append(parts, "("+strings.Join(ors, " OR ")+")")
	}

	if len(parts) == 0 {
		return "1 = 1", nil
	}
	return strings.Join(parts, " AND "), args
}

// Matches evaluates the predicate in memory with the same semantics Compile
// produces in SQL.
func (p Predicate) Matches(row models.VariantRow) bool {
	if p.InStockOnly && row.CurQty <= 0 {
		return false
	}
	if len(p.Any) == 0 {
		return true
	}
	for _, c := range p.Any {
		value := fieldValue(row, c.Field)
		if value == "" {
			continue
		}
		if strings.Contains(strings.ToLower(value), strings.ToLower(c.Term)) {
			return true
		}
	}
	return false
}

func fieldValue(row models.VariantRow, f Field) string {
	switch f {
	case FieldItemName:
		return row.ItemName
	case FieldItemCode:
		return row.ItemCode
	case FieldMasterCode:
		return row.MasterCode
	case FieldColor:
		return row.Color
	case FieldDescription:
		return row.Description
	case FieldGroupName:
		return row.GroupName
	case FieldKindName:
		return row.KindName
	case FieldCategory:
		return row.Category
	default:
		return ""
	}
}
