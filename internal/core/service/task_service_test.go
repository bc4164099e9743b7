package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-api/internal/core/domain"
	"github.com/taskhub/task-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks   map[string]*domain.Task
	nextID  int
	failErr error // if set, every call returns this error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.nextID++
	task.ID = fmt.Sprintf("task-%d", r.nextID)
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if r.failErr != nil {
		return r.failErr
	}
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if r.failErr != nil {
		return r.failErr
	}
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) Snapshot(_ context.Context) ([]domain.Task, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	out := make([]domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, *t)
	}
	return out, nil
}

// stubListCache records cache traffic and can serve a canned page.
type stubListCache struct {
	stored      *ports.PagedResult
	gets        int
	sets        int
	invalidates int
}

func (c *stubListCache) Get(_ context.Context, _ ports.FilterCriteria) (*ports.PagedResult, error) {
	c.gets++
	return c.stored, nil
}

func (c *stubListCache) Set(_ context.Context, _ ports.FilterCriteria, result *ports.PagedResult) error {
	c.sets++
	c.stored = result
	return nil
}

func (c *stubListCache) Invalidate(_ context.Context) error {
	c.invalidates++
	c.stored = nil
	return nil
}

func validInput() ports.TaskInput {
	return ports.TaskInput{
		Title:       "Write report",
		Description: "Quarterly figures",
		Priority:    "High",
		Category:    "Admin",
	}
}

func TestTaskService_Create_Success(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, nil, zerolog.Nop())

	task, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.ID == "" {
		t.Fatalf("expected an assigned id")
	}
	if task.IsCompleted {
		t.Fatalf("new tasks must not be completed")
	}
	if task.CompletedAt != nil {
		t.Fatalf("new tasks must have no completion timestamp")
	}
	if task.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt must be stamped")
	}
}

func TestTaskService_Create_Validation(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, nil, zerolog.Nop())

	cases := []struct {
		name  string
		input ports.TaskInput
		field string
	}{
		{"missing title", ports.TaskInput{Description: "d", Priority: "Low", Category: "c"}, "title"},
		{"title too long", ports.TaskInput{Title: string(make([]byte, 101)), Description: "d", Priority: "Low", Category: "c"}, "title"},
		{"missing description", ports.TaskInput{Title: "t", Priority: "Low", Category: "c"}, "description"},
		{"missing category", ports.TaskInput{Title: "t", Description: "d", Priority: "Low"}, "category"},
		{"bad priority", ports.TaskInput{Title: "t", Description: "d", Priority: "Urgent", Category: "c"}, "priority"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, f := range verr.Fields {
				if f.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected error on field %s, got %+v", tc.field, verr.Fields)
			}
		})
	}

	if len(repo.tasks) != 0 {
		t.Fatalf("invalid input must not reach the store")
	}
}

func TestTaskService_Update_PreservesCreatedAtAndCompletion(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.SetCompletion(context.Background(), created.ID, true); err != nil {
		t.Fatalf("set completion failed: %v", err)
	}

	input := validInput()
	input.Title = "Rewrite report"
	input.Priority = "Low"

	updated, err := svc.Update(context.Background(), created.ID, input)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Rewrite report" || updated.Priority != domain.PriorityLow {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt must be immutable")
	}
	if !updated.IsCompleted || updated.CompletedAt == nil {
		t.Fatalf("update must not touch the completion state")
	}
}

func TestTaskService_Update_NotFound(t *testing.T) {
	svc := NewTaskService(newStubTaskRepo(), nil, zerolog.Nop())

	if _, err := svc.Update(context.Background(), "missing", validInput()); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_SetCompletion_Transitions(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	done, err := svc.SetCompletion(context.Background(), created.ID, true)
	if err != nil {
		t.Fatalf("SetCompletion(true) returned error: %v", err)
	}
	if !done.IsCompleted || done.CompletedAt == nil {
		t.Fatalf("expected completed with timestamp: %+v", done)
	}
	if done.CompletedAt.Before(done.CreatedAt) {
		t.Fatalf("CompletedAt %v precedes CreatedAt %v", done.CompletedAt, done.CreatedAt)
	}

	reopened, err := svc.SetCompletion(context.Background(), created.ID, false)
	if err != nil {
		t.Fatalf("SetCompletion(false) returned error: %v", err)
	}
	if reopened.IsCompleted || reopened.CompletedAt != nil {
		t.Fatalf("reopening must clear the completion timestamp: %+v", reopened)
	}
}

func TestTaskService_SetCompletion_RepeatKeepsTimestamp(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }
	done, err := svc.SetCompletion(context.Background(), created.ID, true)
	if err != nil {
		t.Fatalf("SetCompletion(true) returned error: %v", err)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(first) {
		t.Fatalf("expected CompletedAt %v, got %v", first, done.CompletedAt)
	}

	// Completing an already-completed task is not a transition and must not
	// move the original completion time.
	svc.now = func() time.Time { return first.Add(time.Hour) }
	again, err := svc.SetCompletion(context.Background(), created.ID, true)
	if err != nil {
		t.Fatalf("repeated SetCompletion(true) returned error: %v", err)
	}
	if again.CompletedAt == nil || !again.CompletedAt.Equal(first) {
		t.Fatalf("repeated completion re-stamped CompletedAt: %v", again.CompletedAt)
	}
}

func TestTaskService_Create_TitleLimitCountsRunes(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, nil, zerolog.Nop())

	// 100 two-byte runes: over the limit in bytes, at the limit in characters.
	input := validInput()
	input.Title = strings.Repeat("ü", domain.MaxTitleLength)
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("100-rune title must be accepted: %v", err)
	}

	input.Title = strings.Repeat("ü", domain.MaxTitleLength+1)
	_, err := svc.Create(context.Background(), input)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("101-rune title: expected ValidationError, got %v", err)
	}
}

func TestTaskService_Delete(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("double delete: expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_List_FiltersAndPages(t *testing.T) {
	repo := newStubTaskRepo()
	svc := NewTaskService(repo, nil, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }

	inputs := []ports.TaskInput{
		{Title: "Write report", Description: "Quarterly figures", Priority: "High", Category: "Admin"},
		{Title: "Pay invoices", Description: "Supplier backlog", Priority: "Medium", Category: "Finance"},
		{Title: "Patch servers", Description: "Security updates", Priority: "Low", Category: "IT"},
	}
	for _, in := range inputs {
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	result, err := svc.List(context.Background(), ports.FilterCriteria{Category: "Fin"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.TotalCount != 1 || result.Items[0].Title != "Pay invoices" {
		t.Fatalf("unexpected result: total=%d", result.TotalCount)
	}

	clamped, err := svc.List(context.Background(), ports.FilterCriteria{PageNumber: 9, PageSize: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if clamped.PageNumber != 2 || len(clamped.Items) != 1 {
		t.Fatalf("expected clamp to last page, got page=%d items=%d", clamped.PageNumber, len(clamped.Items))
	}
}

func TestTaskService_List_UsesCache(t *testing.T) {
	repo := newStubTaskRepo()
	cache := &stubListCache{}
	svc := NewTaskService(repo, cache, zerolog.Nop())

	if _, err := svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if cache.invalidates != 1 {
		t.Fatalf("create must invalidate the cache, got %d", cache.invalidates)
	}

	first, err := svc.List(context.Background(), ports.FilterCriteria{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("miss must populate the cache, got %d sets", cache.sets)
	}

	second, err := svc.List(context.Background(), ports.FilterCriteria{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if second != cache.stored {
		t.Fatalf("second call should be served from cache")
	}
	if first.TotalCount != second.TotalCount {
		t.Fatalf("cached result diverged")
	}
}

func TestTaskService_List_RepoError(t *testing.T) {
	repo := newStubTaskRepo()
	repoErr := errors.New("store down")
	repo.failErr = repoErr
	svc := NewTaskService(repo, nil, zerolog.Nop())

	if _, err := svc.List(context.Background(), ports.FilterCriteria{}); !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}
