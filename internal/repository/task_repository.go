package repository

import (
	"github.com/taskboard/taskboard-api/internal/database"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task. The preloadable Project relation is never
// written through the task, only the foreign key is.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit(clause.Associations).Create(task).Error
}

// FindAll retrieves tasks with their parent project preloaded so reads
// can expose projectId/projectName without a second round trip.
func (r *GormTaskRepository) FindAll(params *utils.PaginationParams) ([]models.Task, error) {
	var tasks []models.Task

	query := r.db.Preload("Project").Order("id")
	if params != nil {
		query = query.Scopes(database.Paginate(*params))
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID finds a task by ID with its parent project preloaded
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Preload("Project").First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit(clause.Associations).Save(task).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
