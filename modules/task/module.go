package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TaskModule provides task lifecycle services and emits a lifecycle
// event after every successful mutation.
type TaskModule struct {
	db       *gorm.DB
	service  *Service
	eventBus mono.EventBus
	dbPath   string
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.EventBusAwareModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule() *TaskModule {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "taskboard.db"
	}
	return &TaskModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// SetEventBus receives the EventBus from the framework.
func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskUpdatedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

// Start initializes the database connection and runs migrations.
// The task and auth modules share one SQLite file so that reference
// expansion can join against the users table.
func (m *TaskModule) Start(_ context.Context) error {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := m.db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.service = NewService(NewRepository(m.db))

	log.Printf("[task] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop gracefully closes the database connection.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err == nil {
		sqlDB.Close()
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health performs a health check on the task module.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service
// container. The framework prefixes service names with the module name.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	log.Printf("[task] Registered services: services.task.{create,get,list,update,delete}")
	return nil
}

// createTask handles the task.create service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (domain.View, error) {
	t, err := m.service.CreateTask(ctx, req)
	if err != nil {
		return domain.View{}, err
	}

	view := t.Expand()
	m.publishCreated(view)
	return view, nil
}

// getTask handles the task.get service request.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (domain.View, error) {
	if req.ID == "" {
		return domain.View{}, fmt.Errorf("id is required")
	}

	t, err := m.service.GetTaskByID(ctx, req.ID)
	if err != nil {
		return domain.View{}, err
	}
	return t.Expand(), nil
}

// listTasks handles the task.list service request.
func (m *TaskModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	filter := Filter{
		Status:       domain.Status(req.Status),
		Priority:     domain.Priority(req.Priority),
		AssignedToID: req.AssignedToID,
		CreatorID:    req.CreatorID,
		Overdue:      req.Overdue,
	}

	var srt Sort
	if req.SortBy != "" {
		key := SortKey(req.SortBy)
		if !key.Valid() {
			return ListTasksResponse{}, fmt.Errorf("invalid sort key: %s", req.SortBy)
		}
		srt.Key = key
	}
	srt.Descending = req.Order == "desc"

	tasks, err := m.service.ListTasks(ctx, filter, srt)
	if err != nil {
		return ListTasksResponse{}, err
	}

	resp := ListTasksResponse{
		Tasks: make([]domain.View, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, t.Expand())
	}
	return resp, nil
}

// updateTask handles the task.update service request.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (domain.View, error) {
	if req.ID == "" {
		return domain.View{}, fmt.Errorf("id is required")
	}

	t, err := m.service.UpdateTask(ctx, req)
	if err != nil {
		return domain.View{}, err
	}

	view := t.Expand()
	// The assignee is notified only when the update payload explicitly
	// carried the field, not merely because the task has an assignee.
	m.publishUpdated(view, req.AssignedToID != nil)
	return view, nil
}

// deleteTask handles the task.delete service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if req.ID == "" {
		return DeleteTaskResponse{Deleted: false}, fmt.Errorf("id is required")
	}

	if err := m.service.DeleteTask(ctx, req.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}

	m.publishDeleted(req.ID)
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// Publishing happens after the mutation has been persisted; a publish
// failure is logged and never propagated as a request failure.

func (m *TaskModule) publishCreated(view domain.View) {
	if m.eventBus == nil {
		return
	}
	evt := events.TaskCreatedEvent{Task: view}
	if err := events.TaskCreatedV1.Publish(m.eventBus, evt, nil); err != nil {
		log.Printf("[task] Failed to publish TaskCreated event: %v", err)
	}
}

func (m *TaskModule) publishUpdated(view domain.View, assigneeSet bool) {
	if m.eventBus == nil {
		return
	}
	evt := events.TaskUpdatedEvent{Task: view, AssigneeSet: assigneeSet}
	if err := events.TaskUpdatedV1.Publish(m.eventBus, evt, nil); err != nil {
		log.Printf("[task] Failed to publish TaskUpdated event: %v", err)
	}
}

func (m *TaskModule) publishDeleted(id string) {
	if m.eventBus == nil {
		return
	}
	evt := events.TaskDeletedEvent{TaskID: id}
	if err := events.TaskDeletedV1.Publish(m.eventBus, evt, nil); err != nil {
		log.Printf("[task] Failed to publish TaskDeleted event: %v", err)
	}
}
