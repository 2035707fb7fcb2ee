package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ibizabroker/520-project/internal/models"
	"github.com/ibizabroker/520-project/internal/repo"
	"github.com/ibizabroker/520-project/internal/utils"
)

type SocialService struct {
	social *repo.SocialRepo
}

func NewSocialService(social *repo.SocialRepo) *SocialService {
	return &SocialService{social: social}
}

// Publish makes the caller's recipe public and puts it on the feed.
// Only the recipe owner may publish; anyone else gets 403.
func (s *SocialService) Publish(ctx context.Context, user *models.User, recipeID string) (string, error) {
	recipe, err := s.social.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", utils.NotFound("Recipe not found")
		}
		return "", utils.Internal("could not load recipe")
	}

	if recipe.UserID != user.ID {
		return "", utils.Forbidden("Permission denied")
	}

	smid, err := s.social.Publish(ctx, recipeID)
	if err != nil {
		return "", utils.Internal("could not publish recipe")
	}
	return smid, nil
}

func (s *SocialService) ListPosts(ctx context.Context, page, perPage int) ([]repo.PostView, int64, error) {
	posts, total, err := s.social.ListPublicPosts(ctx, page, perPage)
	if err != nil {
		return nil, 0, utils.Internal("could not list posts")
	}
	return posts, total, nil
}

func (s *SocialService) Like(ctx context.Context, smid string) error {
	if _, err := s.getPost(ctx, smid); err != nil {
		return err
	}
	if err := s.social.IncrementLikes(ctx, smid); err != nil {
		return utils.Internal("could not like post")
	}
	return nil
}

// Unlike reports whether a like was removed; an already-zero counter
// is not an error, the handler phrases it for the caller.
func (s *SocialService) Unlike(ctx context.Context, smid string) (bool, error) {
	post, err := s.getPost(ctx, smid)
	if err != nil {
		return false, err
	}
	if post.Likes == 0 {
		return false, nil
	}
	if err := s.social.DecrementLikes(ctx, smid); err != nil {
		return false, utils.Internal("could not unlike post")
	}
	return true, nil
}

func (s *SocialService) AddBookmark(ctx context.Context, userID, recipeID string) error {
	if _, err := s.social.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound("Recipe not found")
		}
		return utils.Internal("could not load recipe")
	}
	if _, err := s.social.AddBookmark(ctx, userID, recipeID); err != nil {
		return utils.Internal("could not add bookmark")
	}
	return nil
}

func (s *SocialService) ListBookmarks(ctx context.Context, userID string, page, perPage int) ([]models.Recipe, int64, error) {
	recipes, total, err := s.social.ListBookmarks(ctx, userID, page, perPage)
	if err != nil {
		return nil, 0, utils.Internal("could not list bookmarks")
	}
	return recipes, total, nil
}

func (s *SocialService) AddComment(ctx context.Context, userID, smid, text string) error {
	if _, err := s.getPost(ctx, smid); err != nil {
		return err
	}
	if _, err := s.social.AddComment(ctx, smid, userID, text); err != nil {
		return utils.Internal("could not add comment")
	}
	return nil
}

func (s *SocialService) ListComments(ctx context.Context, smid string) ([]repo.CommentView, error) {
	comments, err := s.social.ListComments(ctx, smid)
	if err != nil {
		return nil, utils.Internal("could not list comments")
	}
	return comments, nil
}

func (s *SocialService) getPost(ctx context.Context, smid string) (*models.Post, error) {
	post, err := s.social.GetPostBySMID(ctx, smid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFound("Post not found on social media")
		}
		return nil, utils.Internal("could not load post")
	}
	return post, nil
}
