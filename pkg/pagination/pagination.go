package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many items any page can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Meta describes the position of a page within the full result set.
type Meta struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalProducts"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Zero returns the metadata for an empty, unfiltered result set. TotalPages
// is 1 even with no items so clients always have a valid page range.
func Zero(limit int) Meta {
	return Meta{
		CurrentPage: 1,
		TotalPages:  1,
		TotalItems:  0,
		Limit:       NormalizeLimit(limit),
	}
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps the requested page to 1 or greater.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Paginate slices an already-filtered, already-ordered item list into the
// requested page. A page beyond the end yields an empty slice with
// well-formed metadata, never an error.
func Paginate[T any](items []T, page, limit int) ([]T, Meta) {
	limit = NormalizeLimit(limit)
	page = NormalizePage(page)

	total := len(items)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	skip := (page - 1) * limit
	var pageItems []T
	if skip < total {
		end := skip + limit
		if end > total {
			end = total
		}
		pageItems = items[skip:end]
	} else {
		pageItems = []T{}
	}

	return pageItems, Meta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
