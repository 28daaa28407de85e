package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/taskboard/taskboard-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates the database with sample development data. It is a
// no-op when any users already exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		alice, err := seedUser(tx, "alice", "password123", "alice@example.com")
		if err != nil {
			return err
		}
		bob, err := seedUser(tx, "bob", "password456", "bob@example.com")
		if err != nil {
			return err
		}

		personal := &models.Project{Name: "Personal", Description: "Personal tasks and reminders", UserID: &alice.ID}
		work := &models.Project{Name: "Work", Description: "Work-related projects", UserID: &alice.ID}
		reading := &models.Project{Name: "Reading", Description: "Books to read", UserID: &bob.ID}
		for _, p := range []*models.Project{personal, work, reading} {
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("failed to seed project %q: %w", p.Name, err)
			}
		}

		tasks := []*models.Task{
			{Title: "Buy groceries", Description: "Milk, Bread, Eggs", Status: "pending", ProjectID: &personal.ID},
			{Title: "Finish project", Description: "Complete the backend", Status: "in progress", ProjectID: &work.ID},
			{Title: "Read a book", Description: "Read Clean Code by Robert C. Martin", Status: "pending", ProjectID: &reading.ID},
		}
		for _, t := range tasks {
			if err := tx.Create(t).Error; err != nil {
				return fmt.Errorf("failed to seed task %q: %w", t.Title, err)
			}
		}

		log.Info().Msg("Sample data initialized")
		return nil
	})
}

func seedUser(tx *gorm.DB, username, password, email string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
	}
	if err := tx.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to seed user %q: %w", username, err)
	}
	return user, nil
}
