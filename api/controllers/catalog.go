package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/souqline/catalog-backend/api/middleware"
	"github.com/souqline/catalog-backend/api/responses"
	"github.com/souqline/catalog-backend/api/validators"
	"github.com/souqline/catalog-backend/internal/catalog"
	"github.com/souqline/catalog-backend/pkg/config"
	pkgerrors "github.com/souqline/catalog-backend/pkg/errors"
	"github.com/souqline/catalog-backend/pkg/logger"
	"github.com/souqline/catalog-backend/pkg/pagination"
)

const maxQueryInt = 1_000_000

// readEnvelope is the catalog read wire shape: the result fields sit at the
// top level next to success, not nested under data. Storefront clients
// depend on this layout.
type readEnvelope struct {
	Success bool `json:"success"`
	*catalog.CatalogResult
}

// degradedEnvelope is returned with HTTP 200 when the read path cannot reach
// its backing store. Lists are empty, pagination is zeroed, and the error
// message is generic: internal text never reaches clients.
type degradedEnvelope struct {
	Success    bool                   `json:"success"`
	Products   []*catalog.Product     `json:"products"`
	Categories []catalog.CategoryNode `json:"categories"`
	Pagination pagination.Meta        `json:"pagination"`
	Error      string                 `json:"error"`
}

type createEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Product any    `json:"product"`
}

// ListCatalogProducts serves the main catalog listing with row-level
// filtering.
func ListCatalogProducts(svc catalog.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		page, limit, err := readPagination(r, cfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListCatalog(r.Context(), catalog.ListInput{
			Category: validators.QueryString(r, "category"),
			Sub:      validators.QueryString(r, "sub"),
			Search:   validators.QueryString(r, "search"),
			Page:     page,
			Limit:    limit,
			Role:     middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			writeDegraded(r, logg, w, limit, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, readEnvelope{Success: true, CatalogResult: result})
	}
}

// BrowseCategoryProducts serves the category browse path, where filters are
// ANDed against already-grouped products.
func BrowseCategoryProducts(svc catalog.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		page, limit, err := readPagination(r, cfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.BrowseCategory(r.Context(), catalog.BrowseInput{
			CategoryID: chi.URLParam(r, "categoryID"),
			Sub:        validators.QueryString(r, "sub"),
			Search:     validators.QueryString(r, "search"),
			Page:       page,
			Limit:      limit,
			Role:       middleware.RoleFromContext(r.Context()),
		})
		if err != nil {
			writeDegraded(r, logg, w, limit, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, readEnvelope{Success: true, CatalogResult: result})
	}
}

// CreateCatalogProduct handles single-row product creation.
func CreateCatalogProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var input catalog.CreateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, createEnvelope{
			Success: true,
			Message: "product created",
			Product: row,
		})
	}
}

func readPagination(r *http.Request, cfg *config.Config) (page, limit int, err error) {
	page, err = validators.ParseQueryInt(r, "page", 1, 1, maxQueryInt)
	if err != nil {
		return 0, 0, err
	}
	limit, err = validators.ParseQueryInt(r, "limit", cfg.Catalog.DefaultPageSize, 1, pagination.MaxLimit)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func writeDegraded(r *http.Request, logg *logger.Logger, w http.ResponseWriter, limit int, err error) {
	ctx := r.Context()
	if logg != nil {
		logg.Error(ctx, "catalog.read.degraded", err)
	}
	responses.WriteJSON(w, http.StatusOK, degradedEnvelope{
		Products:   []*catalog.Product{},
		Categories: []catalog.CategoryNode{},
		Pagination: pagination.Zero(limit),
		Error:      "failed to load catalog data",
	})
}
