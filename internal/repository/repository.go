package repository

import (
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindAll retrieves all users
	FindAll() ([]models.User, error)

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete deletes a user together with its projects and their tasks
	Delete(id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindAll retrieves all projects
	FindAll() ([]models.Project, error)

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project together with its tasks
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindAll retrieves tasks with their parent project joined in.
	// A nil params returns the full collection.
	FindAll(params *utils.PaginationParams) ([]models.Task, error)

	// FindByID finds a task by ID with its parent project joined in
	FindByID(id uint64) (*models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error
}
