package models

import "time"

type TaskStatus int

const (
	TaskStatusWaiting TaskStatus = iota
	TaskStatusInProgress
	TaskStatusPaused
	TaskStatusCompleted
	TaskStatusCancelled
)

// Valid reports whether the value is a defined task status.
func (s TaskStatus) Valid() bool {
	return s >= TaskStatusWaiting && s <= TaskStatusCancelled
}

type TaskPriority int

const (
	TaskPriorityLow TaskPriority = iota
	TaskPriorityMedium
	TaskPriorityHigh
	TaskPriorityVeryHigh
)

// Valid reports whether the value is a defined task priority.
func (p TaskPriority) Valid() bool {
	return p >= TaskPriorityLow && p <= TaskPriorityVeryHigh
}

type Task struct {
	ID          string       `gorm:"type:varchar(36);primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	UserID      string       `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Status      TaskStatus   `gorm:"not null;default:0" json:"status"`
	Priority    TaskPriority `gorm:"not null;default:0" json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
