package visibility

import (
	"github.com/souqline/catalog-backend/pkg/auth"
)

// Inventory quantities are privileged data: customers browse availability,
// employees see stock counts. The decision lives here so every read path
// applies the same rule.

// QuantitiesVisible reports whether the actor may see per-variant stock
// quantities and storage locations.
func QuantitiesVisible(role auth.Role) bool {
	return role == auth.RoleEmployee
}
