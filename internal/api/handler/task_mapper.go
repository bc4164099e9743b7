package handler

import (
	"github.com/taskhub/task-api/internal/core/domain"
	"github.com/taskhub/task-api/internal/core/ports"
)

// Hand-written conversions between wire DTOs and internal types. The field
// sets differ on purpose: create/update requests carry no id, completion
// state or timestamps.

func toTaskInput(title, description, priority, category string) ports.TaskInput {
	return ports.TaskInput{
		Title:       title,
		Description: description,
		Priority:    priority,
		Category:    category,
	}
}

func toCriteria(req listTasksRequest) ports.FilterCriteria {
	return ports.FilterCriteria{
		QuerySearch: req.QuerySearch,
		Title:       req.Title,
		Category:    req.Category,
		Priority:    req.Priority,
		IsCompleted: req.IsCompleted,
		SortBy:      req.SortBy,
		IsDesc:      req.IsDesc,
		PageNumber:  req.PageNumber,
		PageSize:    req.PageSize,
	}
}

func toTaskResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Category:    t.Category,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func toListResponse(result *ports.PagedResult) listTasksResponse {
	items := make([]taskResponse, 0, len(result.Items))
	for _, t := range result.Items {
		items = append(items, toTaskResponse(t))
	}
	return listTasksResponse{
		Data: items,
		Pagination: paginationResponse{
			TotalCount: result.TotalCount,
			PageNumber: result.PageNumber,
			PageSize:   result.PageSize,
		},
	}
}
