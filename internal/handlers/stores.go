package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailops/backoffice/internal/server/middlewares"
	srvErrors "github.com/retailops/backoffice/pkg/errors"
	"github.com/retailops/backoffice/pkg/listing"
)

// ListStores returns one page of the store list view.
// (GET/POST /stores/index)
func (h *Handler) ListStores(c *gin.Context) {
	h.list(c, h.storeVM)
}

// GetStoreFilters returns the store view's filters with the user's saved
// values applied.
// (GET/POST /stores/filters)
func (h *Handler) GetStoreFilters(c *gin.Context) {
	h.filters(c, h.storeVM)
}

// GetBrandsFilter feeds the brand filter's remote options.
// (GET /filters/brands)
func (h *Handler) GetBrandsFilter(c *gin.Context) {
	brands, err := h.store.Brands().List(c.Request.Context())
	if err != nil {
		zap.S().Named("stores_handler").Errorw("failed to list brands", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list brands"})
		return
	}

	options := make([]listing.Option, 0, len(brands))
	for _, brand := range brands {
		options = append(options, listing.Option{ID: brand.ID, Name: brand.Name})
	}
	c.JSON(http.StatusOK, options)
}

// list runs the shared list pipeline for one view model.
func (h *Handler) list(c *gin.Context, vm listing.ViewModel) {
	user := middlewares.CurrentUser(c)
	if user == nil || !vm.HasAccess(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	state := h.sessionFor(user.ID, vm)
	envelope, err := h.engine.List(c.Request.Context(), vm, state, parseListRequest(c), user, c.Request.URL.Path)
	if err != nil {
		zap.S().Named("list_handler").Errorw("failed to build list", "view", vm.SessionBucket(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build list"})
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// filters serializes a view's filter definitions with saved session values.
func (h *Handler) filters(c *gin.Context, vm listing.ViewModel) {
	user := middlewares.CurrentUser(c)
	if user == nil || !vm.HasAccess(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	state := h.sessionFor(user.ID, vm)
	filterList := vm.Filters()
	if err := state.ApplyToFilters(c.Request.Context(), filterList); err != nil {
		zap.S().Named("list_handler").Errorw("failed to load filter state", "view", vm.SessionBucket(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load filters"})
		return
	}

	c.JSON(http.StatusOK, listing.SerializeFilters(filterList))
}

// ExportStores streams the current store list, filters applied, as a
// spreadsheet.
// (POST /stores/export)
func (h *Handler) ExportStores(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil || !h.storeVM.HasAccess(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	state := h.sessionFor(user.ID, h.storeVM)
	workbook, err := h.exporter.ExportStores(c.Request.Context(), h.storeVM, state, parseListRequest(c), user)
	if err != nil {
		if srvErrors.IsEmptyResultError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no rows to export"})
			return
		}
		zap.S().Named("stores_handler").Errorw("failed to export stores", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export stores"})
		return
	}

	writeWorkbook(c, workbook, "Export")
}
