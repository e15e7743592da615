package handlers

import (
	"net/http"

	"processcraft/internal/domain"
	"processcraft/internal/http/middleware"
	"processcraft/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateTaskRequest struct {
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Order       int    `json:"order"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// MoveTaskRequest is the column-move payload emitted by the board client.
// The board always sends order 0; the value is stored as-is.
type MoveTaskRequest struct {
	Status string `json:"status"`
	Order  int    `json:"order"`
}

func recordMutation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	middleware.MutationResults.WithLabelValues(operation, result).Inc()
}

func (h *Handler) CreateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req CreateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad request", nil)
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), userID, req.ProjectID,
		req.Title, req.Description, domain.Status(req.Status), req.Order)
	recordMutation("create", err)
	if err != nil {
		respondServiceError(c, err, "Project not found or you don't have permission to add tasks to it.")
		return
	}
	respondOK(c, http.StatusCreated, "Task created successfully.", task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req UpdateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad request", nil)
		return
	}

	upd := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		upd.Status = &s
	}

	task, err := h.Tasks.UpdateDetails(c.Request.Context(), userID, c.Param("id"), upd)
	recordMutation("update", err)
	if err != nil {
		respondServiceError(c, err, "Task not found or you don't have permission to update it.")
		return
	}
	respondOK(c, http.StatusOK, "Task updated successfully.", task)
}

// MoveTask writes status and order in one atomic update. This is the
// endpoint the drag-and-drop board reconciles against.
func (h *Handler) MoveTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req MoveTaskRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad request", nil)
		return
	}

	task, err := h.Tasks.UpdateStatusAndOrder(c.Request.Context(), userID,
		c.Param("id"), domain.Status(req.Status), req.Order)
	recordMutation("move", err)
	if err != nil {
		respondServiceError(c, err, "Task not found or you don't have permission to update it.")
		return
	}
	respondOK(c, http.StatusOK, "Task status updated successfully.", task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	err := h.Tasks.Delete(c.Request.Context(), userID, c.Param("id"))
	recordMutation("delete", err)
	if err != nil {
		respondServiceError(c, err, "Task not found or you don't have permission to delete it.")
		return
	}
	respondOK(c, http.StatusOK, "Task deleted successfully.", nil)
}

// ListProjectTasks returns the tasks of one project in board order.
func (h *Handler) ListProjectTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	tasks, err := h.Tasks.ListByProject(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Project not found.")
		return
	}
	respondOK(c, http.StatusOK, "", tasks)
}

// DashboardSummary aggregates task counts by status across every project
// the user owns.
func (h *Handler) DashboardSummary(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	counts, err := h.Tasks.CountByStatus(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to load summary.")
		return
	}
	respondOK(c, http.StatusOK, "", counts)
}
