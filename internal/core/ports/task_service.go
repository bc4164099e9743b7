package ports

import (
	"context"

	"github.com/taskhub/task-api/internal/core/domain"
)

// TaskInput carries the writable fields of a task. Create and update share
// the same field set; id, completion state and timestamps are owned by the
// service.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	Category    string
}

// FilterCriteria is the full set of optional constraints, sort order and page
// window a listing request may specify. Zero values mean "not set".
type FilterCriteria struct {
	QuerySearch string
	Title       string
	Category    string
	Priority    string
	IsCompleted *bool
	SortBy      string // Title | Priority | CreatedAt (default CreatedAt)
	IsDesc      bool
	PageNumber  int // 1-based, default 1
	PageSize    int // default 10
}

// PagedResult carries one page of tasks plus pagination metadata.
// TotalCount is the number of records matching the filter before the page
// window is applied; PageNumber reflects any clamping to the last page.
type PagedResult struct {
	Items      []domain.Task
	TotalCount int
	PageNumber int
	PageSize   int
}

// TaskService defines the use-case operations on the shared task list.
// Authorization is enforced before these are reached; the service itself
// assumes the caller is allowed to perform the operation.
type TaskService interface {
	List(ctx context.Context, criteria FilterCriteria) (*PagedResult, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, input TaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, input TaskInput) (*domain.Task, error)
	SetCompletion(ctx context.Context, id string, completed bool) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
