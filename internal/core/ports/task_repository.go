package ports

import (
	"context"

	"github.com/taskhub/task-api/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error

	// Snapshot returns a stable view of all tasks for one filter/sort/page
	// pass. Consistency across calls is not guaranteed: writers racing a
	// listing may or may not be visible.
	Snapshot(ctx context.Context) ([]domain.Task, error)
}
