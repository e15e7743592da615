package handlers

import (
	"net/http"

	"processcraft/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *Handler) CreateProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req CreateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad request", nil)
		return
	}

	project, err := h.Projects.Create(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err, "Failed to create project.")
		return
	}
	respondOK(c, http.StatusCreated, "Project created successfully.", project)
}

func (h *Handler) ListProjects(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	projects, err := h.Projects.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to load projects.")
		return
	}
	respondOK(c, http.StatusOK, "", projects)
}

// GetProject returns one project together with its tasks in board order.
// A project the caller does not own renders as not-found.
func (h *Handler) GetProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	result, err := h.Projects.GetWithTasks(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Project not found.")
		return
	}
	respondOK(c, http.StatusOK, "", result)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req UpdateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad request", nil)
		return
	}

	project, err := h.Projects.Update(c.Request.Context(), userID, c.Param("id"), service.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err, "Project not found or you don't have permission to update it.")
		return
	}
	respondOK(c, http.StatusOK, "Project updated successfully.", project)
}

// DeleteProject removes the project and all of its tasks.
func (h *Handler) DeleteProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	if err := h.Projects.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Project not found or you don't have permission to delete it.")
		return
	}
	respondOK(c, http.StatusOK, "Project deleted successfully.", nil)
}
