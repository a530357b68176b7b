package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/retailops/backoffice/internal/server/middlewares"
	"github.com/retailops/backoffice/internal/services"
	"github.com/retailops/backoffice/internal/store"
	"github.com/retailops/backoffice/internal/viewmodels"
	"github.com/retailops/backoffice/pkg/listing"
)

type Handler struct {
	engine   *listing.Engine
	store    *store.Store
	auth     *services.AuthService
	uploads  *services.UploadService
	importer *services.Importer
	exporter *services.Exporter

	storeVM *viewmodels.StoreViewModel
	userVM  *viewmodels.UserViewModel
}

func New(
	engine *listing.Engine,
	st *store.Store,
	auth *services.AuthService,
	uploads *services.UploadService,
	importer *services.Importer,
	exporter *services.Exporter,
) *Handler {
	return &Handler{
		engine:   engine,
		store:    st,
		auth:     auth,
		uploads:  uploads,
		importer: importer,
		exporter: exporter,
		storeVM:  viewmodels.NewStoreViewModel(),
		userVM:   viewmodels.NewUserViewModel(),
	}
}

// RegisterRoutes mounts the API on the given group. Everything except login
// and logout sits behind bearer-token auth.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)

	authorized := router.Group("", middlewares.Auth(h.auth))

	authorized.GET("/users/me", h.GetMyProfile)
	authorized.GET("/users/index", h.ListUsers)
	authorized.POST("/users/index", h.ListUsers)
	authorized.GET("/users/filters", h.GetUserFilters)
	authorized.POST("/users/filters", h.GetUserFilters)

	authorized.GET("/stores/index", h.ListStores)
	authorized.POST("/stores/index", h.ListStores)
	authorized.GET("/stores/filters", h.GetStoreFilters)
	authorized.POST("/stores/filters", h.GetStoreFilters)
	authorized.GET("/filters/brands", h.GetBrandsFilter)
	authorized.GET("/stores/temporary-folder", h.GetTemporaryUploadFolder)
	authorized.POST("/stores/import/upload", h.UploadImportFiles)
	authorized.POST("/stores/import/process", h.ProcessImport)
	authorized.POST("/stores/export", h.ExportStores)
}

// sessionFor scopes the persisted list-view state to one user and one view.
func (h *Handler) sessionFor(user int64, vm listing.ViewModel) *listing.SessionState {
	return listing.NewSessionState(h.store.ViewState().ForUser(user), vm.SessionBucket())
}
