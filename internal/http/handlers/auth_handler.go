package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ibizabroker/520-project/internal/services"
	"github.com/ibizabroker/520-project/internal/utils"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup and Login consume form fields, not JSON; the frontend posts
// url-encoded credentials.

func (h *AuthHandler) Signup(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	name := c.PostForm("name")
	if email == "" || password == "" || name == "" {
		utils.RespondValidationError(c, "email, password and name are required")
		return
	}

	resp, err := h.auth.Signup(c.Request.Context(), email, password, name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		utils.RespondValidationError(c, "email and password are required")
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), email, password)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok && appErr.Status == http.StatusUnauthorized {
			c.Header("WWW-Authenticate", "Bearer")
		}
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, resp)
}

// Logout is a stateless acknowledgment: there is no server-side
// revocation list, the caller discards the token. Calling it any
// number of times is fine.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.RespondOK(c, gin.H{"message": "Logged out successfully"})
}
