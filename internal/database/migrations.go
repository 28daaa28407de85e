package database

import (
	"fmt"

	"github.com/taskboard/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes creates the foreign-key and filter indexes the list and
// cascade-delete queries depend on. Idempotent across restarts.
func AddIndexes(db *gorm.DB) error {
	targets := []struct {
		model any
		field string
	}{
		{&models.Project{}, "UserID"},
		{&models.Task{}, "ProjectID"},
		{&models.Task{}, "Status"},
		{&models.Task{}, "CreatedAt"},
	}

	m := db.Migrator()
	for _, t := range targets {
		if m.HasIndex(t.model, t.field) {
			continue
		}
		if err := m.CreateIndex(t.model, t.field); err != nil {
			return fmt.Errorf("failed to create index on %T.%s: %w", t.model, t.field, err)
		}
	}

	return nil
}
