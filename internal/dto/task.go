package dto

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/models"
)

// TaskDTO represents a task in API responses. ProjectID and ProjectName
// are derived from the preloaded parent project and are null when the
// task is unattached.
type TaskDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	ProjectID   *uint64   `json:"projectId"`
	ProjectName *string   `json:"projectName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
	}

	if task.Project != nil {
		dto.ProjectName = &task.Project.Name
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models to DTOs
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
