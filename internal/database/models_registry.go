package database

import "forkful/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Recipe{},
		&models.Commit{},
		&models.Like{},
		&models.Follow{},
		&models.Comment{},
	}
}
