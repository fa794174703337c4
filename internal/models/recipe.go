// Package models contains data structures for the application's domain models.
package models

import "time"

// Difficulty grades how hard a recipe is to cook.
type Difficulty string

const (
	// DifficultyEasy marks a beginner-friendly recipe.
	DifficultyEasy Difficulty = "easy"
	// DifficultyMedium marks a recipe requiring some experience.
	DifficultyMedium Difficulty = "medium"
	// DifficultyHard marks an advanced recipe.
	DifficultyHard Difficulty = "hard"
)

// Recipe is the central entity of the platform. A recipe may be forked from
// another recipe; ForkedFromID is a weak reference that never cascades, so a
// fork outlives its ancestor's archival or privacy changes.
//
// Recipes are never physically deleted through the API: IsArchived hides a
// recipe from browse queries while keeping it retrievable by its author.
type Recipe struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// List-valued fields are stored through the gorm JSON serializer so the
	// persisted form stays compatible across postgres and sqlite.
	Ingredients []string `gorm:"serializer:json;type:text" json:"ingredients"`
	Steps       []string `gorm:"serializer:json;type:text" json:"steps"`
	Tags        []string `gorm:"serializer:json;type:text" json:"tags"`
	DietaryTags []string `gorm:"serializer:json;type:text" json:"dietary_tags"`

	Notes      string     `gorm:"type:text" json:"notes"`
	PrepTime   int        `json:"prep_time"`
	CookTime   int        `json:"cook_time"`
	Servings   int        `json:"servings"`
	Difficulty Difficulty `gorm:"type:varchar(10)" json:"difficulty"`
	Cuisine    string     `gorm:"size:80" json:"cuisine"`
	ImageURL   string     `json:"image_url"`

	IsPublic   bool `gorm:"not null" json:"is_public"`
	IsArchived bool `gorm:"not null;default:false" json:"is_archived"`

	AuthorID uint `gorm:"not null;index" json:"author_id"`
	User     User `gorm:"foreignKey:AuthorID" json:"author"`

	ForkedFromID *uint        `gorm:"index" json:"forked_from_id,omitempty"`
	ForkedFrom   *ForkSummary `gorm:"-" json:"forked_from,omitempty"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// ForksCount is not persisted; computed at query time
	ForksCount int `gorm:"->" json:"forks_count"`
	// Liked indicates whether the current requesting user liked this recipe (computed)
	Liked bool `gorm:"->" json:"liked"`

	Commits  []Commit  `gorm:"foreignKey:RecipeID" json:"commits,omitempty"`
	Comments []Comment `gorm:"foreignKey:RecipeID" json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ForkSummary is the reduced view of a fork ancestor exposed on a recipe
// detail. It intentionally carries no content fields so a private or archived
// ancestor still resolves without leaking restricted data.
type ForkSummary struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	AuthorUsername string `json:"author_username"`
	AuthorName     string `json:"author_name"`
}
