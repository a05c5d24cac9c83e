package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"construction-pm/internal/domain"
	resp "construction-pm/internal/transport/http/response"
)

const msgTaskNotFound = "Task not found"

type TaskService interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
}

type TaskHandler struct{ svc TaskService }

func NewTaskHandler(svc TaskService) *TaskHandler { return &TaskHandler{svc: svc} }

type taskReq struct {
	ProjectID   int64  `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  *int64 `json:"assigned_to"`
	DueDate     string `json:"due_date" binding:"omitempty,ymd"`
	Status      string `json:"status"`
}

func (r *taskReq) toTask() *domain.Task {
	return &domain.Task{
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		AssignedTo:  r.AssignedTo,
		DueDate:     domain.Date(r.DueDate),
		Status:      r.Status,
	}
}

func (h *TaskHandler) List(c *gin.Context) {
	ts, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, ts)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req taskReq
	if !bind(c, &req) {
		return
	}
	if err := h.svc.Create(c.Request.Context(), req.toTask()); err != nil {
		writeError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp.Message("Task created successfully"))
}

// Update ignores project_id; a task cannot move between projects.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req taskReq
	if !bind(c, &req) {
		return
	}
	t := req.toTask()
	t.ID = id
	if err := h.svc.Update(c.Request.Context(), t); err != nil {
		writeError(c, err, msgTaskNotFound)
		return
	}
	c.JSON(http.StatusOK, resp.Message("Task updated successfully"))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, msgTaskNotFound)
		return
	}
	c.JSON(http.StatusOK, resp.Message("Task deleted successfully"))
}
