package models

import "time"

// Todo is a single to-do item owned by exactly one user.
type Todo struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Deadline    time.Time  `json:"deadline" db:"deadline"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	IsCompleted bool       `json:"isCompleted" db:"is_completed"`
	CompletedAt *time.Time `json:"completedAt" db:"completed_at"` // nil while incomplete
	CreatorID   int64      `json:"creator_id" db:"creator_id"`
}
