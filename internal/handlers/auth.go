package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retailops/backoffice/internal/models"
	"github.com/retailops/backoffice/internal/server/middlewares"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
// (POST /login)
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unable to authenticate user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  profilePayload(user),
	})
}

// Logout is a no-op: tokens expire on their own and the frontend drops its
// copy.
// (POST /logout)
func (h *Handler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

// GetMyProfile returns the authenticated user's display information.
// (GET /users/me)
func (h *Handler) GetMyProfile(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profilePayload(user)})
}

func profilePayload(user *models.User) gin.H {
	return gin.H{
		"fullname":    user.FullName(),
		"primaryRole": models.HumanizeRole(user.PrimaryRole()),
	}
}
