package models

import "time"

// Post is a recipe published to the social feed. Its ID is the SMID
// callers reference when liking or commenting. Likes is a plain
// counter; there is no per-user like ledger.
type Post struct {
	ID        string    `gorm:"column:id;type:text;primaryKey" json:"smid"`
	RecipeID  string    `gorm:"column:recipe_id;type:text;uniqueIndex;not null" json:"recipe_id"`
	Likes     int       `gorm:"column:likes;not null;default:0" json:"likes"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Post) TableName() string { return "posts" }

type Bookmark struct {
	ID        string    `gorm:"column:id;type:text;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;type:text;index;not null" json:"user_id"`
	RecipeID  string    `gorm:"column:recipe_id;type:text;not null" json:"recipe_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Bookmark) TableName() string { return "bookmarks" }

type Comment struct {
	ID        string    `gorm:"column:id;type:text;primaryKey" json:"id"`
	PostID    string    `gorm:"column:post_id;type:text;index;not null" json:"post_id"`
	UserID    string    `gorm:"column:user_id;type:text;not null" json:"user_id"`
	Text      string    `gorm:"column:text;type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
