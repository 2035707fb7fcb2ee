package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ibizabroker/520-project/internal/models"
)

type SocialRepo struct {
	pool    Pool
	timeout time.Duration
}

// PostView is a feed entry: a public recipe joined with its social
// row. SMID is nil for recipes made public outside the feed flow.
type PostView struct {
	SMID          *string `json:"smid"`
	RecipeID      string  `json:"recipe_id"`
	RecipeName    string  `json:"recipe_name"`
	RecipeContent string  `json:"recipe_content"`
	UserID        string  `json:"user_id"`
	Likes         int     `json:"likes"`
}

type CommentView struct {
	Text     string `json:"comment_text"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

func NewSocialRepo(pool Pool, timeout time.Duration) *SocialRepo {
	return &SocialRepo{pool: pool, timeout: timeout}
}

func (r *SocialRepo) GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, content, visibility, created_at, updated_at
		FROM recipes
		WHERE id = $1
	`, id)

	var recipe models.Recipe
	if err := row.Scan(
		&recipe.ID,
		&recipe.UserID,
		&recipe.Name,
		&recipe.Content,
		&recipe.Visibility,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &recipe, nil
}

// Publish flips the recipe public and ensures a feed post exists,
// returning the post's SMID. Re-publishing an already public recipe
// keeps the existing post.
func (r *SocialRepo) Publish(ctx context.Context, recipeID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		UPDATE recipes SET visibility = true, updated_at = NOW() WHERE id = $1
	`, recipeID)
	if err != nil {
		return "", fmt.Errorf("publish recipe: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (id, recipe_id, likes, created_at)
		VALUES ($1, $2, 0, NOW())
		ON CONFLICT (recipe_id) DO UPDATE SET recipe_id = EXCLUDED.recipe_id
		RETURNING id
	`, uuid.NewString(), recipeID)

	var smid string
	if err := row.Scan(&smid); err != nil {
		return "", fmt.Errorf("upsert post: %w", err)
	}
	return smid, nil
}

func (r *SocialRepo) GetPostBySMID(ctx context.Context, smid string) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT id, recipe_id, likes, created_at
		FROM posts
		WHERE id = $1
	`, smid)

	var post models.Post
	if err := row.Scan(&post.ID, &post.RecipeID, &post.Likes, &post.CreatedAt); err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

func (r *SocialRepo) ListPublicPosts(ctx context.Context, page, perPage int) ([]PostView, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	limit := perPage
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT p.id, r.id, r.name, r.content, r.user_id, COALESCE(p.likes, 0)
		FROM recipes r
		LEFT JOIN posts p ON p.recipe_id = r.id
		WHERE r.visibility = true
		ORDER BY r.created_at DESC
		LIMIT %d OFFSET %d
	`, limit, offset))
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var results []PostView
	for rows.Next() {
		var view PostView
		if err := rows.Scan(
			&view.SMID,
			&view.RecipeID,
			&view.RecipeName,
			&view.RecipeContent,
			&view.UserID,
			&view.Likes,
		); err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		results = append(results, view)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}

	row := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM recipes WHERE visibility = true")
	var total int64
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	return results, total, nil
}

func (r *SocialRepo) IncrementLikes(ctx context.Context, smid string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, "UPDATE posts SET likes = likes + 1 WHERE id = $1", smid)
	if err != nil {
		return fmt.Errorf("increment likes: %w", err)
	}
	return nil
}

// DecrementLikes floors at zero; callers decide how a zero count is
// surfaced.
func (r *SocialRepo) DecrementLikes(ctx context.Context, smid string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, "UPDATE posts SET likes = likes - 1 WHERE id = $1 AND likes > 0", smid)
	if err != nil {
		return fmt.Errorf("decrement likes: %w", err)
	}
	return nil
}

func (r *SocialRepo) AddBookmark(ctx context.Context, userID, recipeID string) (*models.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	bookmark := models.Bookmark{
		ID:       uuid.NewString(),
		UserID:   userID,
		RecipeID: recipeID,
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO bookmarks (id, user_id, recipe_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`, bookmark.ID, bookmark.UserID, bookmark.RecipeID)

	if err := row.Scan(&bookmark.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}
	return &bookmark, nil
}

func (r *SocialRepo) ListBookmarks(ctx context.Context, userID string, page, perPage int) ([]models.Recipe, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	limit := perPage
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT r.id, r.user_id, r.name, r.content, r.visibility, r.created_at, r.updated_at
		FROM bookmarks b
		JOIN recipes r ON r.id = b.recipe_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT %d OFFSET %d
	`, limit, offset), userID)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var results []models.Recipe
	for rows.Next() {
		var recipe models.Recipe
		if err := rows.Scan(
			&recipe.ID,
			&recipe.UserID,
			&recipe.Name,
			&recipe.Content,
			&recipe.Visibility,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan bookmark: %w", err)
		}
		results = append(results, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookmarks: %w", err)
	}

	row := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM bookmarks WHERE user_id = $1", userID)
	var total int64
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookmarks: %w", err)
	}

	return results, total, nil
}

func (r *SocialRepo) AddComment(ctx context.Context, postID, userID, text string) (*models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	comment := models.Comment{
		ID:     uuid.NewString(),
		PostID: postID,
		UserID: userID,
		Text:   text,
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (id, post_id, user_id, text, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`, comment.ID, comment.PostID, comment.UserID, comment.Text)

	if err := row.Scan(&comment.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &comment, nil
}

func (r *SocialRepo) ListComments(ctx context.Context, postID string) ([]CommentView, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT c.text, u.id, u.name
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var results []CommentView
	for rows.Next() {
		var view CommentView
		if err := rows.Scan(&view.Text, &view.UserID, &view.UserName); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		results = append(results, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return results, nil
}
