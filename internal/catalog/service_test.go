package catalog

import (
	"context"
	"sort"
	"testing"

	"github.com/souqline/catalog-backend/pkg/auth"
	"github.com/souqline/catalog-backend/pkg/config"
	"github.com/souqline/catalog-backend/pkg/db/models"
	pkgerrors "github.com/souqline/catalog-backend/pkg/errors"
	"github.com/souqline/catalog-backend/pkg/logger"
)

type fakeStore struct {
	rows       []models.VariantRow
	categories []models.Category

	listErr   error
	insertErr error

	findCalls   int
	insertCalls int
}

func (f *fakeStore) ListVariantRows(_ context.Context, pred Predicate) ([]models.VariantRow, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var matched []models.VariantRow
	for _, row := range f.rows {
		if pred.Matches(row) {
			matched = append(matched, row)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].ItemName < matched[j].ItemName
	})
	return matched, nil
}

func (f *fakeStore) ListCategories(context.Context) ([]models.Category, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.categories, nil
}

func (f *fakeStore) FindByUniqueID(_ context.Context, uniqueID string) (*models.VariantRow, error) {
	f.findCalls++
	for i := range f.rows {
		if f.rows[i].UniqueID == uniqueID {
			return &f.rows[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertVariantRow(_ context.Context, row *models.VariantRow) error {
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, existing := range f.rows {
		if existing.UniqueID == row.UniqueID {
			return pkgerrors.New(pkgerrors.CodeConflict, "product already exists")
		}
	}
	f.rows = append(f.rows, *row)
	return nil
}

func testCatalogConfig() config.CatalogConfig {
	return config.CatalogConfig{
		PlaceholderImageURL: "https://cdn.example.com/placeholder.jpg",
		DefaultColor:        "افتراضي",
		DefaultSize:         "ONE SIZE",
		DefaultGroupName:    "عام",
		DefaultKindName:     "عام",
		DefaultUnitName:     "قطعة",
		DefaultPlaceName:    "المخزن الرئيسي",
		DefaultDescription:  "منتج بدون وصف",
		DefaultPageSize:     20,
	}
}

func newTestService(t *testing.T, store *fakeStore) Service {
	t.Helper()
	svc, err := NewService(store, nil, testCatalogConfig(), logger.New(logger.Options{ServiceName: "catalog-test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestListCatalogGroupsAndPaginates(t *testing.T) {
	store := &fakeStore{
		rows: []models.VariantRow{
			{UniqueID: "A-0-1", MasterCode: "A", ItemName: "Apron", Color: "Red", Size: "M", CurQty: 5},
			{UniqueID: "A-0-2", MasterCode: "A", ItemName: "Apron", Color: "Red", Size: "L", CurQty: 5},
			{UniqueID: "B-0-1", MasterCode: "B", ItemName: "Boots", Color: "Black", CurQty: 2},
		},
		categories: []models.Category{{ID: 1, Name: "Kitchen"}},
	}
	svc := newTestService(t, store)

	result, err := svc.ListCatalog(context.Background(), ListInput{Role: auth.RoleEmployee})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(result.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(result.Products))
	}
	if result.Products[0].ModelID != "A" || result.Products[1].ModelID != "B" {
		t.Fatalf("unexpected product order: %+v", result.Products)
	}
	if got := result.Products[0].Variants[0].Sizes; len(got) != 2 {
		t.Fatalf("expected merged sizes, got %v", got)
	}
	if result.Pagination.TotalItems != 2 || result.Pagination.TotalPages != 1 {
		t.Fatalf("unexpected pagination: %+v", result.Pagination)
	}
	if result.Stats.TotalRawProducts != 3 || result.Stats.TotalGroupedProducts != 2 {
		t.Fatalf("unexpected stats: %+v", result.Stats)
	}
	if len(result.Categories) != 1 {
		t.Fatalf("expected category tree in envelope, got %+v", result.Categories)
	}
}

func TestListCatalogResolvesNumericCategory(t *testing.T) {
	store := &fakeStore{
		rows: []models.VariantRow{
			{UniqueID: "A-0-1", MasterCode: "A", ItemName: "Mixer", GroupName: "Kitchen", CurQty: 1},
			{UniqueID: "B-0-1", MasterCode: "B", ItemName: "Boots", GroupName: "Shoes", CurQty: 1},
		},
		categories: []models.Category{{ID: 9, Name: "Kitchen"}},
	}
	svc := newTestService(t, store)

	result, err := svc.ListCatalog(context.Background(), ListInput{Category: "9"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Products) != 1 || result.Products[0].ModelID != "A" {
		t.Fatalf("expected only the Kitchen model, got %+v", result.Products)
	}
	if result.Filters.Category != "Kitchen" {
		t.Fatalf("expected resolved category name in filters, got %q", result.Filters.Category)
	}
}

func TestListCatalogHidesQuantitiesFromCustomers(t *testing.T) {
	store := &fakeStore{
		rows: []models.VariantRow{
			{UniqueID: "A-0-7", MasterCode: "A", ItemName: "Apron", Color: "Red", CurQty: 5, StorID: 7},
		},
	}
	svc := newTestService(t, store)

	asCustomer, err := svc.ListCatalog(context.Background(), ListInput{})
	if err != nil {
		t.Fatalf("list as customer: %v", err)
	}
	v := asCustomer.Products[0].Variants[0]
	if v.CurQty != 0 || v.StorID != 0 {
		t.Fatalf("expected zeroed quantities for anonymous caller, got qty=%d stor=%d", v.CurQty, v.StorID)
	}

	asEmployee, err := svc.ListCatalog(context.Background(), ListInput{Role: auth.RoleEmployee})
	if err != nil {
		t.Fatalf("list as employee: %v", err)
	}
	v = asEmployee.Products[0].Variants[0]
	if v.CurQty != 5 || v.StorID != 7 {
		t.Fatalf("expected real quantities for employee, got qty=%d stor=%d", v.CurQty, v.StorID)
	}
}

func TestListCatalogOutOfRangePage(t *testing.T) {
	store := &fakeStore{
		rows: []models.VariantRow{
			{UniqueID: "A-0-1", MasterCode: "A", ItemName: "Apron", CurQty: 1},
		},
	}
	svc := newTestService(t, store)

	result, err := svc.ListCatalog(context.Background(), ListInput{Page: 50})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Products) != 0 {
		t.Fatalf("expected empty page, got %d products", len(result.Products))
	}
	if result.Pagination.TotalItems != 1 || result.Pagination.CurrentPage != 50 {
		t.Fatalf("unexpected pagination: %+v", result.Pagination)
	}
}

func TestListCatalogPropagatesStoreFailure(t *testing.T) {
	store := &fakeStore{listErr: pkgerrors.New(pkgerrors.CodeDependency, "db down")}
	svc := newTestService(t, store)

	_, err := svc.ListCatalog(context.Background(), ListInput{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected DEPENDENCY error, got %v", err)
	}
}

func TestBrowseCategoryUsesAggregateFilters(t *testing.T) {
	// Row-level union would admit the boots model for sub="Sandals" via the
	// category clauses. The browse path ANDs instead.
	store := &fakeStore{
		rows: []models.VariantRow{
			{UniqueID: "B-0-1", MasterCode: "B", ItemName: "Boots", GroupName: "Shoes", CurQty: 2},
			{UniqueID: "S-0-1", MasterCode: "S", ItemName: "Strap Sandals", GroupName: "Shoes", CurQty: 2},
		},
		categories: []models.Category{{ID: 3, Name: "Shoes"}},
	}
	svc := newTestService(t, store)

	result, err := svc.BrowseCategory(context.Background(), BrowseInput{CategoryID: "3", Sub: "Sandals"})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if len(result.Products) != 1 || result.Products[0].ModelID != "S" {
		t.Fatalf("expected only the sandals model, got %+v", result.Products)
	}
}

func TestBrowseCategoryUnknownIDYieldsEmpty(t *testing.T) {
	// The second row's item name contains the unknown id's digits. An
	// unresolved id must not degrade into a text match against them.
	store := &fakeStore{
		rows: []models.VariantRow{
			{UniqueID: "B-0-1", MasterCode: "B", ItemName: "Boots", GroupName: "Shoes", CurQty: 2},
			{UniqueID: "J-0-1", MasterCode: "J", ItemName: "Jersey 42 Home Kit", GroupName: "Apparel", CurQty: 5},
		},
		categories: []models.Category{{ID: 3, Name: "Shoes"}},
	}
	svc := newTestService(t, store)

	result, err := svc.BrowseCategory(context.Background(), BrowseInput{CategoryID: "42"})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if len(result.Products) != 0 {
		t.Fatalf("expected no products for unknown category, got %+v", result.Products)
	}
	if result.Pagination.TotalItems != 0 || result.Pagination.TotalPages != 1 {
		t.Fatalf("unexpected pagination: %+v", result.Pagination)
	}
	if !result.Stats.FilteredByCategory {
		t.Fatal("expected category filter to be reported active")
	}
}

func TestCreateProductValidatesBeforeStore(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)

	_, err := svc.CreateProduct(context.Background(), CreateInput{MasterCode: "A"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
	if store.findCalls != 0 || store.insertCalls != 0 {
		t.Fatal("expected no store interaction on validation failure")
	}
}

func TestCreateProductAppliesDefaults(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)

	row, err := svc.CreateProduct(context.Background(), CreateInput{
		MasterCode: "M-77",
		ItemName:   "Plain Tee",
		OutPrice:   49.5,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cfg := testCatalogConfig()
	if row.UniqueID != "M-77-0-0" {
		t.Fatalf("unexpected unique_id %q", row.UniqueID)
	}
	if row.ItemCode != "M-77" {
		t.Fatalf("expected item_code fallback to master_code, got %q", row.ItemCode)
	}
	if row.Color != cfg.DefaultColor || row.Size != cfg.DefaultSize {
		t.Fatalf("expected localized defaults, got color=%q size=%q", row.Color, row.Size)
	}
	if !row.AvPrice.Equal(row.OutPrice) {
		t.Fatalf("expected av_price fallback to out_price, got %s vs %s", row.AvPrice, row.OutPrice)
	}
	if row.UnitName != cfg.DefaultUnitName || row.PlaceName != cfg.DefaultPlaceName {
		t.Fatalf("expected legacy defaults, got unit=%q place=%q", row.UnitName, row.PlaceName)
	}
}

func TestCreateProductDuplicateConflicts(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)

	input := CreateInput{MasterCode: "A", ItemName: "Shirt", TypeID: 1, StorID: 2}
	if _, err := svc.CreateProduct(context.Background(), input); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.CreateProduct(context.Background(), input)
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestCreateProductTranslatesConstraintRace(t *testing.T) {
	// The fast-path check misses the row but the store's unique index still
	// rejects the insert. The caller sees the same CONFLICT either way.
	store := &fakeStore{insertErr: pkgerrors.New(pkgerrors.CodeConflict, "product already exists")}
	svc := newTestService(t, store)

	_, err := svc.CreateProduct(context.Background(), CreateInput{MasterCode: "A", ItemName: "Shirt"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected CONFLICT from constraint translation, got %v", err)
	}
	if store.insertCalls != 1 {
		t.Fatalf("expected one insert attempt, got %d", store.insertCalls)
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil, nil, testCatalogConfig(), logger.New(logger.Options{})); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
