package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/example/taskboard/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Event names delivered to WebSocket clients.
const (
	EventTaskCreated  = "taskCreated"
	EventTaskUpdated  = "taskUpdated"
	EventTaskDeleted  = "taskDeleted"
	EventNotification = "notification"
)

// Broadcaster is the delivery surface the module fans out through.
// *Hub satisfies it; tests substitute a recorder.
type Broadcaster interface {
	BroadcastAll(event string, payload any)
	SendToUser(userID, event string, payload any)
}

// Notification is the targeted payload delivered to an assignee's
// private channel.
type Notification struct {
	Message string `json:"message"`
	TaskID  string `json:"taskId"`
}

// NotifyModule consumes task lifecycle events and fans them out to
// connected WebSocket clients: every mutation is broadcast globally,
// and assignment-relevant mutations additionally notify the assignee's
// channel.
type NotifyModule struct {
	hub       *Hub
	sender    Broadcaster
	cancelHub context.CancelFunc
}

// Compile-time interface checks.
var _ mono.Module = (*NotifyModule)(nil)
var _ mono.EventConsumerModule = (*NotifyModule)(nil)
var _ mono.HealthCheckableModule = (*NotifyModule)(nil)

// NewModule creates a new NotifyModule.
func NewModule() *NotifyModule {
	hub := NewHub()
	return &NotifyModule{
		hub:    hub,
		sender: hub,
	}
}

// Name returns the module name.
func (m *NotifyModule) Name() string {
	return "notify"
}

// Start launches the hub loop.
func (m *NotifyModule) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelHub = cancel
	go m.hub.Run(ctx)
	log.Println("[notify] Module started - WebSocket hub running")
	return nil
}

// Stop shuts down the hub.
func (m *NotifyModule) Stop(_ context.Context) error {
	clientCount := m.hub.ClientCount()
	if m.cancelHub != nil {
		m.cancelHub()
		m.hub.Wait()
	}
	log.Printf("[notify] Module stopped - %d clients were connected", clientCount)
	return nil
}

// Health returns the health status.
func (m *NotifyModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"connected_clients": m.hub.ClientCount(),
		},
	}
}

// RegisterEventConsumers subscribes to the task lifecycle events.
func (m *NotifyModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.TaskCreatedV1, m.handleTaskCreated, m,
	); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.TaskUpdatedV1, m.handleTaskUpdated, m,
	); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.TaskDeletedV1, m.handleTaskDeleted, m,
	); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	log.Println("[notify] Registered event consumers: TaskCreated, TaskUpdated, TaskDeleted")
	return nil
}

// GetHub returns the WebSocket hub for the API module to use.
func (m *NotifyModule) GetHub() *Hub {
	return m.hub
}

func (m *NotifyModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.sender.BroadcastAll(EventTaskCreated, event.Task)

	// A freshly created task always notifies its assignee.
	if event.Task.AssignedTo.ID != "" {
		m.sender.SendToUser(event.Task.AssignedTo.ID, EventNotification, Notification{
			Message: fmt.Sprintf("New task assigned: %s", event.Task.Title),
			TaskID:  event.Task.ID,
		})
	}
	return nil
}

func (m *NotifyModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.sender.BroadcastAll(EventTaskUpdated, event.Task)

	// Updates notify only when the payload explicitly set the assignee,
	// not merely because the task currently has one.
	if event.AssigneeSet && event.Task.AssignedTo.ID != "" {
		m.sender.SendToUser(event.Task.AssignedTo.ID, EventNotification, Notification{
			Message: fmt.Sprintf("Task updated/assigned: %s", event.Task.Title),
			TaskID:  event.Task.ID,
		})
	}
	return nil
}

func (m *NotifyModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.sender.BroadcastAll(EventTaskDeleted, event.TaskID)
	return nil
}
