package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"processcraft/internal/board"
	"processcraft/internal/client"
	"processcraft/internal/domain"

	"github.com/google/uuid"
)

// End-to-end smoke: registers a throwaway user against a running server,
// creates a project and a task, then drives the board controller through a
// real drag (optimistic move + reconcile) and a forced rollback.
func main() {
	base := os.Getenv("APP_URL")
	if base == "" {
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = "8080"
		}
		base = "http://localhost:" + port
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	api := client.New(base)

	email := fmt.Sprintf("smoke-%s@processcraft.local", uuid.NewString()[:8])
	if err := api.Register(ctx, "Smoke Tester", email, "smoke-password"); err != nil {
		log.Fatalf("register: %v", err)
	}
	if err := api.Login(ctx, email, "smoke-password"); err != nil {
		log.Fatalf("login: %v", err)
	}

	project, err := api.CreateProject(ctx, "Smoke Project", "board smoke run")
	if err != nil {
		log.Fatalf("create project: %v", err)
	}
	task, err := api.CreateTask(ctx, project.ID, "Smoke Task", "", domain.StatusToDo)
	if err != nil {
		log.Fatalf("create task: %v", err)
	}
	log.Printf("task created id=%s status=%q", task.ID, task.Status)

	page, err := api.GetProject(ctx, project.ID)
	if err != nil {
		log.Fatalf("load board: %v", err)
	}

	ctrl := board.NewController(api, page.Tasks)
	ctrl.SetPhaseHook(func(taskID string, phase board.MovePhase) {
		log.Printf("move %s -> %s", taskID, phase)
	})

	layer := board.NewDragLayer(
		board.ColumnRegion{Status: domain.StatusToDo, Bounds: board.Rect{X: 0, Y: 0, W: 300, H: 800}},
		board.ColumnRegion{Status: domain.StatusInProgress, Bounds: board.Rect{X: 300, Y: 0, W: 300, H: 800}},
		board.ColumnRegion{Status: domain.StatusDone, Bounds: board.Rect{X: 600, Y: 0, W: 300, H: 800}},
	)

	// Drag the card into the In Progress column.
	ctrl.StartDrag(task.ID)
	outcome := ctrl.EndDrag(ctx, layer, task.ID, board.Point{X: 450, Y: 400})
	if outcome.Phase != board.PhaseCommitted {
		log.Fatalf("expected committed move, got %s (err=%v)", outcome.Phase, outcome.Err)
	}
	log.Printf("moved: status=%q order=%d", outcome.Task.Status, outcome.Task.Order)

	// Force a rollback by moving a task the server has never heard of
	// through the same controller state.
	ghost := domain.Task{ID: uuid.NewString(), Title: "Ghost", Status: domain.StatusToDo}
	ctrl.Reset([]*domain.Task{&ghost, outcome.Task})
	outcome = ctrl.EndDragOnColumn(ctx, ghost.ID, string(domain.StatusDone))
	if outcome.Phase != board.PhaseRolledBack {
		log.Fatalf("expected rollback, got %s", outcome.Phase)
	}
	if n := ctrl.Notification(); n != nil {
		log.Printf("rollback notification: %s", n.Message)
	}

	counts, err := api.DashboardSummary(ctx)
	if err != nil {
		log.Fatalf("summary: %v", err)
	}
	log.Printf("summary: total=%d todo=%d in_progress=%d done=%d",
		counts.Total, counts.ToDo, counts.InProgress, counts.Done)

	done, total := ctrl.Progress()
	log.Printf("board progress: %d/%d", done, total)
	log.Println("smoke ok")
}
