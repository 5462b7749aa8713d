package task

import (
	"context"
	"fmt"
	"time"

	domain "github.com/example/taskboard/domain/task"
	"github.com/google/uuid"
)

// Service owns the task lifecycle. It persists through the repository
// and enforces the structural invariants; notification hand-off is the
// module's concern, after the mutation has succeeded.
type Service struct {
	repo *Repository
	now  func() time.Time
}

// NewService creates a new task service.
func NewService(repo *Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// CreateTask validates and persists a new task. Omitted priority and
// status fall back to Medium and To Do. There is no duplicate
// detection and no existence check on the referenced users.
func (s *Service) CreateTask(_ context.Context, req CreateTaskRequest) (*domain.Task, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(req.Title) > domain.MaxTitleLength {
		return nil, fmt.Errorf("title must be at most %d characters", domain.MaxTitleLength)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if req.DueDate.IsZero() {
		return nil, fmt.Errorf("dueDate is required")
	}
	if req.AssignedToID == "" {
		return nil, fmt.Errorf("assignedToId is required")
	}
	if req.CreatorID == "" {
		return nil, fmt.Errorf("creatorId is required")
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
		if !priority.Valid() {
			return nil, fmt.Errorf("invalid priority: %s", req.Priority)
		}
	}
	status := domain.StatusToDo
	if req.Status != "" {
		status = domain.Status(req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("invalid status: %s", req.Status)
		}
	}

	t := &domain.Task{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		Priority:     priority,
		Status:       status,
		CreatorID:    req.CreatorID,
		AssignedToID: req.AssignedToID,
	}

	if err := s.repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTaskByID returns the task with references expanded, or ErrNotFound.
func (s *Service) GetTaskByID(_ context.Context, id string) (*domain.Task, error) {
	return s.repo.FindByID(id)
}

// UpdateTask applies the supplied fields to an existing task.
// Unspecified fields retain their prior values; an empty partial leaves
// everything but updatedAt unchanged. Changed user references are not
// checked against the user collection.
func (s *Service) UpdateTask(_ context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	t, err := s.repo.FindByID(req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("title cannot be empty")
		}
		if len(*req.Title) > domain.MaxTitleLength {
			return nil, fmt.Errorf("title must be at most %d characters", domain.MaxTitleLength)
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.DueDate != nil {
		t.DueDate = *req.DueDate
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		if !p.Valid() {
			return nil, fmt.Errorf("invalid priority: %s", *req.Priority)
		}
		t.Priority = p
	}
	if req.Status != nil {
		st := domain.Status(*req.Status)
		if !st.Valid() {
			return nil, fmt.Errorf("invalid status: %s", *req.Status)
		}
		t.Status = st
	}
	if req.AssignedToID != nil {
		if *req.AssignedToID == "" {
			return nil, fmt.Errorf("assignedToId cannot be empty")
		}
		t.AssignedToID = *req.AssignedToID
		t.AssignedTo = nil
	}

	if err := s.repo.Save(t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTask removes a task permanently. ErrNotFound when the
// identifier does not resolve.
func (s *Service) DeleteTask(_ context.Context, id string) error {
	return s.repo.Delete(id)
}

// ListTasks returns every task matching the filter in the requested
// order. Overdue is evaluated against the current instant.
func (s *Service) ListTasks(_ context.Context, f Filter, srt Sort) ([]*domain.Task, error) {
	return s.repo.Find(f, srt, s.now())
}
