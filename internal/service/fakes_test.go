package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"processcraft/internal/domain"
	"processcraft/internal/repository"
)

// memStore is an in-memory stand-in for the pgx repositories. It honors the
// same contract, including the FK cascade from project to tasks.
type memStore struct {
	mu   sync.Mutex
	seq  int
	err  error // when set, every operation fails with it
	user map[string]domain.User
	proj map[string]domain.Project
	task map[string]domain.Task
	ord  map[string]int // insertion order, stands in for created_at ties
}

func newMemStore() *memStore {
	return &memStore{
		user: make(map[string]domain.User),
		proj: make(map[string]domain.Project),
		task: make(map[string]domain.Task),
		ord:  make(map[string]int),
	}
}

func (m *memStore) failWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *memStore) Create(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.user {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.CreatedAt = time.Now()
	m.user[u.ID] = *u
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.user[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.user {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// projects implements ProjectStore backed by the shared memStore.
type projects struct{ *memStore }

func (m projects) Create(ctx context.Context, p *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	p.CreatedAt = time.Now()
	m.seq++
	m.ord[p.ID] = m.seq
	m.proj[p.ID] = *p
	return nil
}

func (m projects) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.proj[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m projects) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var res []*domain.Project
	for _, p := range m.proj {
		if p.OwnerID == ownerID {
			p := p
			res = append(res, &p)
		}
	}
	sort.Slice(res, func(i, j int) bool { return m.ord[res[i].ID] > m.ord[res[j].ID] })
	return res, nil
}

func (m projects) Update(ctx context.Context, p *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.proj[p.ID]; !ok {
		return repository.ErrNotFound
	}
	m.proj[p.ID] = *p
	return nil
}

func (m projects) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.proj[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.proj, id)
	// FK cascade
	for tid, t := range m.task {
		if t.ProjectID == id {
			delete(m.task, tid)
		}
	}
	return nil
}

// tasks implements TaskStore backed by the shared memStore.
type tasks struct{ *memStore }

func (m tasks) Create(ctx context.Context, t *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	t.CreatedAt = time.Now()
	m.seq++
	m.ord[t.ID] = m.seq
	m.task[t.ID] = *t
	return nil
}

func (m tasks) GetWithProject(ctx context.Context, id string) (*domain.Task, *domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, nil, m.err
	}
	t, ok := m.task[id]
	if !ok {
		return nil, nil, repository.ErrNotFound
	}
	p, ok := m.proj[t.ProjectID]
	if !ok {
		return nil, nil, repository.ErrNotFound
	}
	return &t, &p, nil
}

func (m tasks) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var res []*domain.Task
	for _, t := range m.task {
		if t.ProjectID == projectID {
			t := t
			res = append(res, &t)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Order != res[j].Order {
			return res[i].Order < res[j].Order
		}
		return m.ord[res[i].ID] < m.ord[res[j].ID]
	})
	return res, nil
}

func (m tasks) Update(ctx context.Context, t *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.task[t.ID]; !ok {
		return repository.ErrNotFound
	}
	m.task[t.ID] = *t
	return nil
}

func (m tasks) UpdateStatusOrder(ctx context.Context, id string, status domain.Status, order int) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.task[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t.Status = status
	t.Order = order
	m.task[id] = t
	return &t, nil
}

func (m tasks) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.task[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.task, id)
	return nil
}

func (m tasks) CountByOwner(ctx context.Context, ownerID string) (domain.TaskCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.TaskCounts{}, m.err
	}
	var counts domain.TaskCounts
	for _, t := range m.task {
		p, ok := m.proj[t.ProjectID]
		if !ok || p.OwnerID != ownerID {
			continue
		}
		switch t.Status {
		case domain.StatusToDo:
			counts.ToDo++
		case domain.StatusInProgress:
			counts.InProgress++
		case domain.StatusDone:
			counts.Done++
		}
		counts.Total++
	}
	return counts, nil
}

// snapshot returns a copy of the stored task row for before/after checks.
func (m *memStore) snapshot(id string) (domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.task[id]
	return t, ok
}
