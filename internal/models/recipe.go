package models

import "time"

type Recipe struct {
	ID         string    `gorm:"column:id;type:text;primaryKey" json:"id"`
	UserID     string    `gorm:"column:user_id;type:text;index;not null" json:"user_id"`
	Name       string    `gorm:"column:name;type:text;not null" json:"name"`
	Content    string    `gorm:"column:content;type:text" json:"content"`
	Visibility bool      `gorm:"column:visibility;not null;default:false" json:"visibility"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Recipe) TableName() string { return "recipes" }
