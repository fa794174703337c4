// Package models contains data structures for the application's domain models.
package models

import "time"

// InitialCommitMessage is the fixed message of the version-1 commit written
// when a recipe is created.
const InitialCommitMessage = "Initial recipe"

// Commit change types recorded in the Changes payload.
const (
	CommitTypeCreate = "create"
	CommitTypeUpdate = "update"
)

// Commit is an immutable, versioned record of a recipe's state at a point in
// its history. Commits are append-only: created once, never updated or
// deleted. Versions per recipe form a contiguous sequence starting at 1,
// enforced by the unique (recipe_id, version) index and transactional writes.
type Commit struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RecipeID uint   `gorm:"not null;uniqueIndex:idx_commit_recipe_version" json:"recipe_id"`
	Message  string `gorm:"size:300;not null" json:"message"`
	// Changes is a serialized JSON description of what changed, free-form
	// per operation type.
	Changes   string    `gorm:"type:text" json:"changes"`
	Version   int       `gorm:"not null;uniqueIndex:idx_commit_recipe_version" json:"version"`
	CreatedAt time.Time `json:"created_at"`
}
