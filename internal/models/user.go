package models

import "time"

// User is a credential-store record. Role is a two-tier flag: true is
// the standard tier assigned at signup, false is the privileged tier.
type User struct {
	ID           string    `gorm:"column:id;type:text;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;type:text;uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"column:name;type:text;not null" json:"name"`
	Role         bool      `gorm:"column:role;not null;default:true" json:"role"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
