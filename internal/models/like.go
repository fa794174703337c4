// Package models contains data structures for the application's domain models.
package models

import "time"

// Like represents a user's like on a recipe.
// The combination of RecipeID and UserID must be unique; the database
// constraint is the sole arbiter when two likes race.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_like_recipe_user" json:"recipe_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_recipe_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
