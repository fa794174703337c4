// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a member of the Forkful platform. Accounts are provisioned
// by the external identity provider; this row carries the public profile.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:40;unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Name      string    `gorm:"size:120" json:"name"`
	Avatar    string    `json:"avatar"`
	Bio       string    `gorm:"type:text" json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// RecipesCount is not persisted; computed at query time
	RecipesCount int `gorm:"->" json:"recipes_count"`
	// FollowersCount is not persisted; computed at query time
	FollowersCount int `gorm:"->" json:"followers_count"`
	// FollowingCount is not persisted; computed at query time
	FollowingCount int `gorm:"->" json:"following_count"`

	Recipes []Recipe `gorm:"foreignKey:AuthorID" json:"recipes,omitempty"`
}
