package models

import "time"

type Zone struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"uniqueIndex;not null"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	Schedules   []Schedule `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
