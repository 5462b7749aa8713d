package task

import (
	"errors"
	"fmt"
	"time"

	domain "github.com/example/taskboard/domain/task"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a task identifier does not resolve.
var ErrNotFound = errors.New("task not found")

// Repository provides access to task storage. Every read expands the
// creator and assignee references into loaded user records.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) expanded() *gorm.DB {
	return r.db.Preload("Creator").Preload("AssignedTo")
}

// Create persists a new task and reloads it with references expanded.
func (r *Repository) Create(t *domain.Task) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return r.reload(t)
}

// FindByID retrieves a task by its ID with references expanded.
func (r *Repository) FindByID(id string) (*domain.Task, error) {
	var t domain.Task
	if err := r.expanded().First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// Save writes back a loaded task. The store stamps updatedAt on every
// write; concurrent writers race under last-write-wins, there is no
// version check.
func (r *Repository) Save(t *domain.Task) error {
	if err := r.db.Save(t).Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return r.reload(t)
}

// Delete removes a task permanently. Deleting an absent identifier
// yields ErrNotFound, never a silent success.
func (r *Repository) Delete(id string) error {
	result := r.db.Delete(&domain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Find returns every task matching the filter, references expanded,
// in the requested order. There is no pagination: callers receive the
// full matching set.
func (r *Repository) Find(f Filter, s Sort, now time.Time) ([]*domain.Task, error) {
	var tasks []*domain.Task
	q := buildQuery(r.expanded(), f, s, now)
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

func (r *Repository) reload(t *domain.Task) error {
	if err := r.expanded().First(t, "id = ?", t.ID).Error; err != nil {
		return fmt.Errorf("failed to reload task: %w", err)
	}
	return nil
}
