// Package query implements the filter/sort/paginate engine behind task
// listings. Apply is a pure transformation from a task snapshot and filter
// criteria to one counted page; the engine holds no state between calls.
package query

import (
	"sort"
	"strings"

	"github.com/taskhub/task-api/internal/core/domain"
	"github.com/taskhub/task-api/internal/core/ports"
)

// Sort keys accepted in FilterCriteria.SortBy. Anything else falls back to
// CreatedAt.
const (
	SortByTitle     = "Title"
	SortByPriority  = "Priority"
	SortByCreatedAt = "CreatedAt"
)

const defaultPageSize = 10

// Predicate is a single filter stage over one task.
type Predicate func(domain.Task) bool

// Apply runs the pipeline in fixed order: free-text filter, field filters,
// count, sort, page window. The order matters: TotalCount must reflect the
// filtered set independent of sorting and pagination.
func Apply(tasks []domain.Task, c ports.FilterCriteria) ports.PagedResult {
	filtered := filter(tasks, buildPredicates(c))
	total := len(filtered)

	sortTasks(filtered, c.SortBy, c.IsDesc)

	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pageNumber := c.PageNumber
	if pageNumber <= 0 {
		pageNumber = 1
	}

	// An out-of-range page request is redirected to the last valid page
	// rather than answered with an empty page.
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages > 0 && pageNumber > totalPages {
		pageNumber = totalPages
	}

	return ports.PagedResult{
		Items:      window(filtered, pageNumber, pageSize),
		TotalCount: total,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}

// buildPredicates translates criteria into an explicit predicate chain.
// All substring matches are case-sensitive.
func buildPredicates(c ports.FilterCriteria) []Predicate {
	var preds []Predicate

	if c.QuerySearch != "" {
		q := c.QuerySearch
		preds = append(preds, func(t domain.Task) bool {
			return strings.Contains(t.Title, q) ||
				strings.Contains(t.Description, q) ||
				strings.Contains(t.Category, q) ||
				strings.Contains(string(t.Priority), q)
		})
	}
	if c.Title != "" {
		s := c.Title
		preds = append(preds, func(t domain.Task) bool {
			return strings.Contains(t.Title, s)
		})
	}
	if c.Category != "" {
		s := c.Category
		preds = append(preds, func(t domain.Task) bool {
			return strings.Contains(t.Category, s)
		})
	}
	if c.Priority != "" {
		s := c.Priority
		preds = append(preds, func(t domain.Task) bool {
			return strings.Contains(string(t.Priority), s)
		})
	}
	if c.IsCompleted != nil {
		want := *c.IsCompleted
		preds = append(preds, func(t domain.Task) bool {
			return t.IsCompleted == want
		})
	}

	return preds
}

func filter(tasks []domain.Task, preds []Predicate) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
next:
	for _, t := range tasks {
		for _, p := range preds {
			if !p(t) {
				continue next
			}
		}
		out = append(out, t)
	}
	return out
}

// sortTasks orders tasks in place. Priority sorts lexically by label
// (High < Low < Medium ascending); the sort is stable so equal keys keep
// their snapshot order.
func sortTasks(tasks []domain.Task, sortBy string, desc bool) {
	var less func(a, b domain.Task) bool
	switch sortBy {
	case SortByTitle:
		less = func(a, b domain.Task) bool { return a.Title < b.Title }
	case SortByPriority:
		less = func(a, b domain.Task) bool { return a.Priority < b.Priority }
	default:
		less = func(a, b domain.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if desc {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}

func window(tasks []domain.Task, pageNumber, pageSize int) []domain.Task {
	offset := (pageNumber - 1) * pageSize
	if offset >= len(tasks) {
		return []domain.Task{}
	}
	end := offset + pageSize
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[offset:end]
}
