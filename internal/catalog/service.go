package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/souqline/catalog-backend/pkg/auth"
	"github.com/souqline/catalog-backend/pkg/config"
	"github.com/souqline/catalog-backend/pkg/db/models"
	pkgerrors "github.com/souqline/catalog-backend/pkg/errors"
	"github.com/souqline/catalog-backend/pkg/logger"
	"github.com/souqline/catalog-backend/pkg/pagination"
	"github.com/souqline/catalog-backend/pkg/redis"
	"github.com/souqline/catalog-backend/pkg/visibility"
)

// categoryCacheKey is the redis key (under the cache namespace) holding the
// serialized category list.
const categoryCacheKey = "catalog:categories"

// Service exposes the catalog read and write operations.
type Service interface {
	ListCatalog(ctx context.Context, input ListInput) (*CatalogResult, error)
	BrowseCategory(ctx context.Context, input BrowseInput) (*CatalogResult, error)
	CreateProduct(ctx context.Context, input CreateInput) (*models.VariantRow, error)
}

// ListInput holds the query filters for the main catalog listing. Category
// accepts a numeric id or a free-text name. Role decides whether quantities
// are visible.
type ListInput struct {
	Category string
	Sub      string
	Search   string
	Page     int
	Limit    int
	Role     auth.Role
}

// BrowseInput holds the filters for the category browse path, where
// filtering happens against already-grouped products.
type BrowseInput struct {
	CategoryID string
	Sub        string
	Search     string
	Page       int
	Limit      int
	Role       auth.Role
}

type rowStore interface {
	ListVariantRows(ctx context.Context, pred Predicate) ([]models.VariantRow, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindByUniqueID(ctx context.Context, uniqueID string) (*models.VariantRow, error)
	InsertVariantRow(ctx context.Context, row *models.VariantRow) error
}

// service implements the catalog service.
type service struct {
	repo  rowStore
	cache *redis.Client
	cfg   config.CatalogConfig
	logg  *logger.Logger
}

// NewService constructs a catalog service. The cache client is optional;
// without one every read hits the store directly.
func NewService(repo rowStore, cache *redis.Client, cfg config.CatalogConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, cfg: cfg, logg: logg}, nil
}

// ListCatalog runs the server read path: predicate → rows → grouping →
// pagination. Filtering happens at the row level with union semantics.
func (s *service) ListCatalog(ctx context.Context, input ListInput) (*CatalogResult, error) {
	categories, err := s.categories(ctx)
	if err != nil {
		return nil, err
	}

	categoryName := ResolveCategoryName(categories, input.Category)

	pred := BuildRowPredicate(categoryName, input.Sub, input.Search)
	rows, err := s.repo.ListVariantRows(ctx, pred)
	if err != nil {
		return nil, err
	}

	products := GroupRows(rows, s.groupOptions())
	s.applyVisibility(products, input.Role)

	page := pagination.NormalizePage(input.Page)
	limit := s.normalizeLimit(input.Limit)
	pageItems, meta := pagination.Paginate(products, page, limit)

	return &CatalogResult{
		Products:   pageItems,
		Categories: BuildCategoryTree(categories),
		Pagination: meta,
		Stats: Stats{
			TotalRawProducts:     len(rows),
			TotalGroupedProducts: len(products),
			FilteredByCategory:   categoryName != "",
			FilteredBySub:        input.Sub != "",
			FilteredBySearch:     input.Search != "",
		},
		Filters: Filters{Category: categoryName, Sub: input.Sub, Search: input.Search},
	}, nil
}

// BrowseCategory runs the aggregate read path: all in-stock rows are grouped
// first, then category, sub-category and search are ANDed against the
// grouped products. An unknown category id yields an empty product list, not
// an error.
func (s *service) BrowseCategory(ctx context.Context, input BrowseInput) (*CatalogResult, error) {
	categories, err := s.categories(ctx)
	if err != nil {
		return nil, err
	}

	categoryName, known := ResolveBrowseCategory(categories, input.CategoryID)
	if !known {
		page := pagination.NormalizePage(input.Page)
		limit := s.normalizeLimit(input.Limit)
		pageItems, meta := pagination.Paginate([]*Product{}, page, limit)
		return &CatalogResult{
			Products:   pageItems,
			Categories: BuildCategoryTree(categories),
			Pagination: meta,
			Stats:      Stats{FilteredByCategory: true, FilteredBySub: input.Sub != "", FilteredBySearch: input.Search != ""},
			Filters:    Filters{Category: input.CategoryID, Sub: input.Sub, Search: input.Search},
		}, nil
	}

	rows, err := s.repo.ListVariantRows(ctx, Predicate{InStockOnly: true})
	if err != nil {
		return nil, err
	}

	grouped := GroupRows(rows, s.groupOptions())
	products := FilterProducts(grouped, categoryName, input.Sub, input.Search)
	s.applyVisibility(products, input.Role)

	page := pagination.NormalizePage(input.Page)
	limit := s.normalizeLimit(input.Limit)
	pageItems, meta := pagination.Paginate(products, page, limit)

	return &CatalogResult{
		Products:   pageItems,
		Categories: BuildCategoryTree(categories),
		Pagination: meta,
		Stats: Stats{
			TotalRawProducts:     len(rows),
			TotalGroupedProducts: len(products),
			FilteredByCategory:   categoryName != "",
			FilteredBySub:        input.Sub != "",
			FilteredBySearch:     input.Search != "",
		},
		Filters: Filters{Category: categoryName, Sub: input.Sub, Search: input.Search},
	}, nil
}

// CreateProduct validates and inserts a single variant row. The existence
// check is a fast path only; the unique index decides the race.
func (s *service) CreateProduct(ctx context.Context, input CreateInput) (*models.VariantRow, error) {
	if input.MasterCode == "" || input.ItemName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "master_code and item_name are required")
	}

	uniqueID := input.UniqueID()
	existing, err := s.repo.FindByUniqueID(ctx, uniqueID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already exists")
	}

	row := BuildVariantRow(input, s.cfg)
	if err := s.repo.InsertVariantRow(ctx, row); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "unique_id", row.UniqueID), "product created")
	return row, nil
}

// categories returns the category list, served from redis when possible.
// Cache failures are logged and fall back to the store.
func (s *service) categories(ctx context.Context) ([]models.Category, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, s.cache.CacheKey(categoryCacheKey))
		if err == nil {
			var cached []models.Category
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if !errors.Is(err, redis.ErrCacheMiss) {
			s.logg.Warn(ctx, "category cache read failed")
		}
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, s.cache.CacheKey(categoryCacheKey), string(encoded), s.cfg.CategoryCacheTTL); err != nil {
				s.logg.Warn(ctx, "category cache write failed")
			}
		}
	}

	return categories, nil
}

// applyVisibility zeroes inventory quantities and locations for actors that
// are not allowed to see them.
func (s *service) applyVisibility(products []*Product, role auth.Role) {
	if visibility.QuantitiesVisible(role) {
		return
	}
	for _, p := range products {
		p.CurQty = 0
		for _, v := range p.Variants {
			v.CurQty = 0
			v.StorID = 0
		}
	}
}

func (s *service) groupOptions() GroupOptions {
	return GroupOptions{
		PlaceholderImage:   s.cfg.PlaceholderImageURL,
		DefaultDescription: s.cfg.DefaultDescription,
	}
}

func (s *service) normalizeLimit(limit int) int {
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	return pagination.NormalizeLimit(limit)
}
