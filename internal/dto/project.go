package dto

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/models"
)

// ProjectDTO represents a project in API responses. UserID is null for
// ownerless projects.
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      *uint64   `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		UserID:      project.UserID,
		CreatedAt:   project.CreatedAt,
	}
}

// ToProjectDTOs converts a slice of Project models to DTOs
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}
