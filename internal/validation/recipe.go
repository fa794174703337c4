// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"net/url"
	"strings"

	"forkful/internal/models"
)

const (
	maxTitleLen         = 200
	maxDescriptionLen   = 5000
	maxListItems        = 100
	maxListItemLen      = 500
	maxCommitMessageLen = 300
)

// ValidateTitle checks that a recipe title is present and within bounds.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError(fmt.Sprintf("title must not exceed %d characters", maxTitleLen))
	}
	return nil
}

// ValidateDifficulty checks the difficulty enum. Empty is allowed; the field
// is optional.
func ValidateDifficulty(d models.Difficulty) error {
	switch d {
	case "", models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return nil
	}
	return models.NewValidationError("difficulty must be one of easy, medium, hard")
}

// ValidateImageURL checks that an image URL, when set, is an absolute URL.
func ValidateImageURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return models.NewValidationError("image_url must be a valid absolute URL")
	}
	return nil
}

// ValidateStringList bounds a list-valued field (ingredients, steps, tags).
func ValidateStringList(field string, items []string) error {
	if len(items) > maxListItems {
		return models.NewValidationError(fmt.Sprintf("%s must not exceed %d entries", field, maxListItems))
	}
	for _, item := range items {
		if len(item) > maxListItemLen {
			return models.NewValidationError(fmt.Sprintf("%s entries must not exceed %d characters", field, maxListItemLen))
		}
	}
	return nil
}

// ValidateCommitMessage bounds a commit message.
func ValidateCommitMessage(message string) error {
	if len(message) > maxCommitMessageLen {
		return models.NewValidationError(fmt.Sprintf("commit message must not exceed %d characters", maxCommitMessageLen))
	}
	return nil
}

// ValidateDescription bounds a recipe description.
func ValidateDescription(description string) error {
	if len(description) > maxDescriptionLen {
		return models.NewValidationError(fmt.Sprintf("description must not exceed %d characters", maxDescriptionLen))
	}
	return nil
}
