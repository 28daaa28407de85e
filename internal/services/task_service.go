package services

import (
	"errors"
	"fmt"

	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/utils"
	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task related business logic.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// CreateTaskInput represents parameters to create a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	ProjectID   *uint64
}

// Create persists a new task. A supplied project ID is attached only
// when it resolves to an existing project; otherwise the task is left
// unattached rather than failing.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	status := input.Status
	if status == "" {
		status = models.DefaultTaskStatus
	}

	projectID, err := s.resolveProjectID(input.ProjectID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		ProjectID:   projectID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID)
}

// List retrieves tasks with their parent project joined in.
func (s *TaskService) List(params *utils.PaginationParams) ([]models.Task, error) {
	return s.taskRepo.FindAll(params)
}

// Get retrieves a task by ID with its parent project joined in.
func (s *TaskService) Get(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents the mutable task fields for an update.
type UpdateTaskInput struct {
	Title       string
	Description string
	Status      string
	ProjectID   *uint64
}

// Update overwrites the mutable fields of an existing task, applying
// the same project-resolution rule as Create.
func (s *TaskService) Update(id uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	projectID, err := s.resolveProjectID(input.ProjectID)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	if input.Status != "" {
		task.Status = input.Status
	}
	task.ProjectID = projectID
	task.Project = nil

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID)
}

// Delete removes a task.
func (s *TaskService) Delete(id uint64) error {
	return s.taskRepo.Delete(id)
}

// resolveProjectID returns the ID when it points at an existing
// project, nil when it is absent or unknown.
func (s *TaskService) resolveProjectID(id *uint64) (*uint64, error) {
	if id == nil {
		return nil, nil
	}

	if _, err := s.projectRepo.FindByID(*id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve project: %w", err)
	}

	return id, nil
}
