package handler

import "time"

// Request/response types owned by the transport layer. They are intentionally
// separate from the domain entity so the JSON contract is not coupled to
// internal changes; mapping is explicit in task_mapper.go.

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority"    validate:"required,oneof=Low Medium High"`
	Category    string `json:"category"    validate:"required"`
}

type updateTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority"    validate:"required,oneof=Low Medium High"`
	Category    string `json:"category"    validate:"required"`
}

// listTasksRequest is bound from query parameters. Absent values keep their
// zero value and fall back to the engine defaults.
type listTasksRequest struct {
	QuerySearch string `query:"querySearch"`
	Title       string `query:"title"`
	Category    string `query:"category"`
	Priority    string `query:"priority"`
	IsCompleted *bool  `query:"isCompleted"`
	SortBy      string `query:"sortBy"`
	IsDesc      bool   `query:"isDesc"`
	PageNumber  int    `query:"pageNumber"`
	PageSize    int    `query:"pageSize"`
}

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type paginationResponse struct {
	TotalCount int `json:"total_count"`
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
}

type listTasksResponse struct {
	Data       []taskResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
