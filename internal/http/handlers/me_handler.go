package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ibizabroker/520-project/internal/http/middleware"
	"github.com/ibizabroker/520-project/internal/utils"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe returns the identity the auth middleware already resolved.
func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.Unauthorized("missing user"))
		return
	}

	utils.RespondOK(c, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"role":       user.Role,
		"created_at": user.CreatedAt,
	})
}
