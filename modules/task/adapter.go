package task

import (
	"context"
	"encoding/json"

	domain "github.com/example/taskboard/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort defines the interface for task operations.
type TaskPort interface {
	Create(ctx context.Context, req CreateTaskRequest) (domain.View, error)
	Get(ctx context.Context, id string) (domain.View, error)
	List(ctx context.Context, req ListTasksRequest) ([]domain.View, error)
	Update(ctx context.Context, req UpdateTaskRequest) (domain.View, error)
	Delete(ctx context.Context, id string) error
}

// TaskAdapter implements TaskPort over the module's service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new TaskAdapter.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task: ServiceContainer is nil")
	}
	return &TaskAdapter{container: container}
}

// Create creates a new task.
func (a *TaskAdapter) Create(ctx context.Context, req CreateTaskRequest) (domain.View, error) {
	var resp domain.View
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return domain.View{}, err
	}
	return resp, nil
}

// Get retrieves a task by ID.
func (a *TaskAdapter) Get(ctx context.Context, id string) (domain.View, error) {
	req := GetTaskRequest{ID: id}
	var resp domain.View
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return domain.View{}, err
	}
	return resp, nil
}

// List returns every task matching the request's filters.
func (a *TaskAdapter) List(ctx context.Context, req ListTasksRequest) ([]domain.View, error) {
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// Update applies a partial update to a task.
func (a *TaskAdapter) Update(ctx context.Context, req UpdateTaskRequest) (domain.View, error) {
	var resp domain.View
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return domain.View{}, err
	}
	return resp, nil
}

// Delete removes a task permanently.
func (a *TaskAdapter) Delete(ctx context.Context, id string) error {
	req := DeleteTaskRequest{ID: id}
	var resp DeleteTaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return err
	}
	return nil
}
