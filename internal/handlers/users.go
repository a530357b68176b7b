package handlers

import (
	"github.com/gin-gonic/gin"
)

// ListUsers returns one page of the user list view.
// (GET/POST /users/index)
func (h *Handler) ListUsers(c *gin.Context) {
	h.list(c, h.userVM)
}

// GetUserFilters returns the user view's filters with the user's saved
// values applied.
// (GET/POST /users/filters)
func (h *Handler) GetUserFilters(c *gin.Context) {
	h.filters(c, h.userVM)
}
