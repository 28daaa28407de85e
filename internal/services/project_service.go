package services

import (
	"errors"
	"fmt"

	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"gorm.io/gorm"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectService handles project related business logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
// OwnerID is nil when no authenticated user could be resolved.
type CreateProjectInput struct {
	Name        string
	Description string
	OwnerID     *uint64
}

// Create persists a new project, optionally owned by a user.
func (s *ProjectService) Create(input CreateProjectInput) (*models.Project, error) {
	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		UserID:      input.OwnerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// List retrieves all projects.
func (s *ProjectService) List() ([]models.Project, error) {
	return s.projectRepo.FindAll()
}

// Get retrieves a project by ID.
func (s *ProjectService) Get(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return project, nil
}

// UpdateProjectInput represents the mutable project fields for an update.
type UpdateProjectInput struct {
	Name        string
	Description string
}

// Update overwrites the mutable fields of an existing project.
func (s *ProjectService) Update(id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	project.Name = input.Name
	project.Description = input.Description

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// Delete removes a project and cascades to its tasks.
func (s *ProjectService) Delete(id uint64) error {
	return s.projectRepo.Delete(id)
}
