package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. Authorization has
// already happened in middleware by the time these run.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /v1/tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        querySearch  query     string  false  "Substring matched against title, description, category and priority"
// @Param        title        query     string  false  "Substring filter on title"
// @Param        category     query     string  false  "Substring filter on category"
// @Param        priority     query     string  false  "Substring filter on priority"
// @Param        isCompleted  query     bool    false  "Exact filter on completion state"
// @Param        sortBy       query     string  false  "Sort key: Title, Priority or CreatedAt (default CreatedAt)"
// @Param        isDesc       query     bool    false  "Sort descending"
// @Param        pageNumber   query     int     false  "1-based page (out-of-range requests are clamped to the last page)"
// @Param        pageSize     query     int     false  "Page size (default 10)"
// @Success      200          {object}  listTasksResponse
// @Failure      401          {object}  map[string]string
// @Failure      403          {object}  map[string]string
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	var req listTasksRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	result, err := h.service.List(c.Request().Context(), toCriteria(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /v1/tasks/:id.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(*task))
}

// Create handles POST /v1/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), toTaskInput(req.Title, req.Description, req.Priority, req.Category))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTaskResponse(*task))
}

// Update handles PUT /v1/tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "New task field values"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("id"), toTaskInput(req.Title, req.Description, req.Priority, req.Category))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskResponse(*task))
}

// SetCompletion handles PATCH /v1/tasks/:id/complete.
//
// @Summary      Mark a task completed or reopen it
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string  true  "Task id"
// @Param        isCompleted  query     bool    true  "New completion state"
// @Success      200          {object}  taskResponse
// @Failure      404          {object}  map[string]string
// @Router       /v1/tasks/{id}/complete [patch]
func (h *TaskHandler) SetCompletion(c echo.Context) error {
	completed, err := strconv.ParseBool(c.QueryParam("isCompleted"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isCompleted must be true or false")
	}

	task, err := h.service.SetCompletion(c.Request().Context(), c.Param("id"), completed)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTaskResponse(*task))
}

// Delete handles DELETE /v1/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  string  true  "Task id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
