package models

import "time"

// DefaultTaskStatus is assigned when a task is created without a status.
// Status is deliberately a free-form string, not an enum.
const DefaultTaskStatus = "pending"

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ProjectID   *uint64   `json:"projectId"`
	CreatedAt   time.Time `json:"createdAt"`

	// Project is preloaded by the repository for denormalized reads.
	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
}
