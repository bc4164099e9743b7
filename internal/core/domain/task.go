package domain

import "time"

// MaxTitleLength is the upper bound on task titles.
const MaxTitleLength = 100

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ValidPriority reports whether p is one of the allowed priority labels.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is the core entity of the shared task list.
//
// Invariant: CompletedAt is non-nil only while IsCompleted is true, and is
// never earlier than CreatedAt.
type Task struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Priority    Priority   `json:"priority" bson:"priority"`
	Category    string     `json:"category" bson:"category"`
	IsCompleted bool       `json:"is_completed" bson:"is_completed"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}
