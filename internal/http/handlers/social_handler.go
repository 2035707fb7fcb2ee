package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ibizabroker/520-project/internal/http/middleware"
	"github.com/ibizabroker/520-project/internal/services"
	"github.com/ibizabroker/520-project/internal/utils"
)

type SocialHandler struct {
	social *services.SocialService
}

type RecipeIDRequest struct {
	RecipeID string `json:"recipe_id" binding:"required"`
}

type SMIDRequest struct {
	SMID string `json:"smid" binding:"required"`
}

type CommentRequest struct {
	SMID        string `json:"smid" binding:"required"`
	CommentText string `json:"comment_text" binding:"required"`
}

func NewSocialHandler(social *services.SocialService) *SocialHandler {
	return &SocialHandler{social: social}
}

func (h *SocialHandler) AddPost(c *gin.Context) {
	var req RecipeIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.Unauthorized("missing user"))
		return
	}

	smid, err := h.social.Publish(c.Request.Context(), user, req.RecipeID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{
		"message": "Recipe visibility updated to public and added to social media",
		"SMID":    smid,
	})
}

func (h *SocialHandler) ListPosts(c *gin.Context) {
	page, perPage := parsePageParams(c)

	posts, total, err := h.social.ListPosts(c.Request.Context(), page, perPage)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{
		"data": posts,
		"meta": utils.NewPagination(page, perPage, total),
	})
}

func (h *SocialHandler) LikePost(c *gin.Context) {
	var req SMIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.social.Like(c.Request.Context(), req.SMID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{"message": "Post liked successfully"})
}

func (h *SocialHandler) UnlikePost(c *gin.Context) {
	var req SMIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	removed, err := h.social.Unlike(c.Request.Context(), req.SMID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if !removed {
		utils.RespondOK(c, gin.H{"message": "Cannot unlike, likes count is already zero"})
		return
	}
	utils.RespondOK(c, gin.H{"message": "Post unliked successfully"})
}

func (h *SocialHandler) AddBookmark(c *gin.Context) {
	var req RecipeIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.Unauthorized("missing user"))
		return
	}

	if err := h.social.AddBookmark(c.Request.Context(), user.ID, req.RecipeID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{"message": "Bookmark added successfully"})
}

func (h *SocialHandler) ListBookmarks(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.Unauthorized("missing user"))
		return
	}

	page, perPage := parsePageParams(c)

	recipes, total, err := h.social.ListBookmarks(c.Request.Context(), user.ID, page, perPage)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{
		"data": recipes,
		"meta": utils.NewPagination(page, perPage, total),
	})
}

func (h *SocialHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.Unauthorized("missing user"))
		return
	}

	if err := h.social.AddComment(c.Request.Context(), user.ID, req.SMID, req.CommentText); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{"message": "Comment added successfully"})
}

func (h *SocialHandler) ListComments(c *gin.Context) {
	comments, err := h.social.ListComments(c.Request.Context(), c.Param("smid"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, comments)
}

func parsePageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage <= 0 {
		perPage = 10
	}
	return page, perPage
}
