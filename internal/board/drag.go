package board

import (
	"context"

	"processcraft/internal/domain"
)

// The drag layer translates pointer gestures into move intents. It holds no
// domain invariants; drop targets resolve by nearest-center proximity among
// the registered column regions.

type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// ColumnRegion is a droppable board column and its screen bounds.
type ColumnRegion struct {
	Status domain.Status
	Bounds Rect
}

// DragLayer resolves drop points against the registered columns.
type DragLayer struct {
	regions []ColumnRegion
}

func NewDragLayer(regions ...ColumnRegion) *DragLayer {
	return &DragLayer{regions: regions}
}

// SetRegions replaces the droppable layout, e.g. after a window resize.
func (l *DragLayer) SetRegions(regions ...ColumnRegion) {
	l.regions = regions
}

// ResolveDrop picks the column whose center is closest to the drop point.
// It reports false when no columns are registered.
func (l *DragLayer) ResolveDrop(p Point) (domain.Status, bool) {
	best := -1
	var bestDist float64
	for i, region := range l.regions {
		c := region.Bounds.Center()
		dx, dy := p.X-c.X, p.Y-c.Y
		dist := dx*dx + dy*dy
		if best < 0 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	if best < 0 {
		return "", false
	}
	return l.regions[best].Status, true
}

// StartDrag marks the task under the pointer; the UI uses it for the
// floating preview only.
func (c *Controller) StartDrag(taskID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.find(taskID) >= 0 {
		c.dragging = taskID
	}
}

// Dragging returns a copy of the task being dragged, if any.
func (c *Controller) Dragging() *domain.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.find(c.dragging); idx >= 0 {
		t := c.tasks[idx]
		return &t
	}
	return nil
}

// EndDrag finishes the gesture: the drop point resolves to a column and the
// resulting intent runs through the optimistic protocol. An unresolvable
// drop is discarded before any state mutation.
func (c *Controller) EndDrag(ctx context.Context, layer *DragLayer, taskID string, drop Point) Outcome {
	c.mu.Lock()
	c.dragging = ""
	c.mu.Unlock()

	status, ok := layer.ResolveDrop(drop)
	if !ok {
		return Outcome{Phase: PhaseIdle}
	}
	return c.Apply(ctx, MoveIntent{TaskID: taskID, Status: status})
}

// EndDragOnColumn finishes the gesture when the UI toolkit already knows the
// drop target's column id. An id that is not a valid column discards the
// intent.
func (c *Controller) EndDragOnColumn(ctx context.Context, taskID, columnID string) Outcome {
	c.mu.Lock()
	c.dragging = ""
	c.mu.Unlock()

	status, err := domain.ParseStatus(columnID)
	if err != nil {
		return Outcome{Phase: PhaseIdle}
	}
	return c.Apply(ctx, MoveIntent{TaskID: taskID, Status: status})
}
