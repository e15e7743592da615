package handlers

import (
	"processcraft/internal/http/middleware"
	"processcraft/internal/repository"
	"processcraft/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB       *pgxpool.Pool
	Auth     *service.AuthService
	Projects *service.ProjectService
	Tasks    *service.TaskService
}

func NewHandler(db *pgxpool.Pool, bcryptCost int) *Handler {
	users := repository.NewUserRepository(db)
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)

	return &Handler{
		DB:       db,
		Auth:     service.NewAuthService(users, bcryptCost),
		Projects: service.NewProjectService(projects, tasks),
		Tasks:    service.NewTaskService(projects, tasks),
	}
}

// getUserID reads the authenticated identity set by the auth middleware.
func getUserID(c *gin.Context) (string, bool) {
	val, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
