package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	UserID      *uint64   `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}
