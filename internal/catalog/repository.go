package catalog

import (
	"context"
	"errors"

	"github.com/souqline/catalog-backend/pkg/db/models"
	pkgerrors "github.com/souqline/catalog-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository is the row store adapter over the variant_rows and categories
// tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListVariantRows fetches the rows admitted by the predicate, ordered by
// item_name ascending. Ordering matters: grouping keys off the first row
// seen per model and color.
func (r *Repository) ListVariantRows(ctx context.Context, pred Predicate) ([]models.VariantRow, error) {
	condition, args := pred.Compile()

	var rows []models.VariantRow
	err := r.db.WithContext(ctx).
		Where(condition, args...).
		Order("item_name asc").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing variant rows")
	}
	return rows, nil
}

// ListCategories fetches all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing categories")
	}
	return categories, nil
}

// FindByUniqueID loads a single row by its unique_id. A missing row returns
// (nil, nil) so the create fast-path can distinguish absence from failure.
func (r *Repository) FindByUniqueID(ctx context.Context, uniqueID string) (*models.VariantRow, error) {
	var row models.VariantRow
	err := r.db.WithContext(ctx).First(&row, "unique_id = ?", uniqueID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading variant row")
	}
	return &row, nil
}

// InsertVariantRow inserts a single row. The unique index on unique_id is
// the real duplicate backstop; a constraint violation surfaces as CONFLICT
// regardless of what the fast-path check saw.
func (r *Repository) InsertVariantRow(ctx context.Context, row *models.VariantRow) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting variant row")
	}
	return nil
}
