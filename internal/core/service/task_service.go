package service

import (
	"context"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-api/internal/core/domain"
	"github.com/taskhub/task-api/internal/core/ports"
	"github.com/taskhub/task-api/internal/core/query"
	"github.com/taskhub/task-api/internal/pkg/metrics"
)

// ListCache abstracts the listing page cache (Redis). A nil ListCache
// disables caching entirely.
type ListCache interface {
	Get(ctx context.Context, criteria ports.FilterCriteria) (*ports.PagedResult, error)
	Set(ctx context.Context, criteria ports.FilterCriteria, result *ports.PagedResult) error
	Invalidate(ctx context.Context) error
}

// TaskService implements the use-case operations on the shared task list.
type TaskService struct {
	repo  ports.TaskRepository
	cache ListCache
	log   zerolog.Logger
	now   func() time.Time
}

// NewTaskService returns a TaskService. cache may be nil.
func NewTaskService(repo ports.TaskRepository, cache ListCache, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, cache: cache, log: log, now: time.Now}
}

// List produces one filtered, sorted, counted page of tasks. Cache failures
// are logged and bypassed; the repository snapshot is the fallback path.
func (s *TaskService) List(ctx context.Context, criteria ports.FilterCriteria) (*ports.PagedResult, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, criteria)
		if err != nil {
			s.log.Warn().Err(err).Msg("list cache lookup failed, falling back to store")
		} else if cached != nil {
			metrics.ListCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.ListCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	tasks, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	result := query.Apply(tasks, criteria)

	if s.cache != nil {
		if err := s.cache.Set(ctx, criteria, &result); err != nil {
			s.log.Warn().Err(err).Msg("failed to store list page in cache")
		}
	}

	return &result, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates input and persists a new task. The id is assigned by the
// repository; CreatedAt is stamped here and is immutable afterwards.
func (s *TaskService) Create(ctx context.Context, input ports.TaskInput) (*domain.Task, error) {
	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    domain.Priority(input.Priority),
		Category:    input.Category,
		IsCompleted: false,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.TasksCreatedTotal.WithLabelValues(input.Priority).Inc()
	s.invalidateListCache(ctx)
	s.log.Info().Str("task_id", task.ID).Str("priority", input.Priority).Msg("task created")
	return task, nil
}

// Update replaces the writable fields of an existing task. CreatedAt and the
// completion state are untouched.
func (s *TaskService) Update(ctx context.Context, id string, input ports.TaskInput) (*domain.Task, error) {
	if err := validateTaskInput(input); err != nil {
		return nil, err
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Priority = domain.Priority(input.Priority)
	task.Category = input.Category

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.invalidateListCache(ctx)
	s.log.Info().Str("task_id", task.ID).Msg("task updated")
	return task, nil
}

// SetCompletion flips the completion state. CompletedAt is stamped only on
// the open-to-done transition, which keeps the CompletedAt >= CreatedAt
// invariant and preserves the original completion time on repeated calls;
// reopening clears it.
func (s *TaskService) SetCompletion(ctx context.Context, id string, completed bool) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasCompleted := task.IsCompleted
	task.IsCompleted = completed
	switch {
	case completed && !wasCompleted:
		now := s.now().UTC()
		task.CompletedAt = &now
	case !completed:
		task.CompletedAt = nil
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("set completion: %w", err)
	}

	metrics.TasksCompletedTotal.WithLabelValues(strconv.FormatBool(completed)).Inc()
	s.invalidateListCache(ctx)
	s.log.Info().Str("task_id", task.ID).Bool("completed", completed).Msg("task completion updated")
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.TasksDeletedTotal.Inc()
	s.invalidateListCache(ctx)
	s.log.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

func (s *TaskService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate list cache")
	}
}

func validateTaskInput(input ports.TaskInput) error {
	verr := &domain.ValidationError{}
	if input.Title == "" {
		verr.Add("title", "is required")
	} else if utf8.RuneCountInString(input.Title) > domain.MaxTitleLength {
		verr.Add("title", fmt.Sprintf("must be at most %d characters", domain.MaxTitleLength))
	}
	if input.Description == "" {
		verr.Add("description", "is required")
	}
	if input.Category == "" {
		verr.Add("category", "is required")
	}
	if !domain.ValidPriority(domain.Priority(input.Priority)) {
		verr.Add("priority", "must be one of Low, Medium, High")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}
