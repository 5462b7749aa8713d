package events

import (
	"github.com/example/taskboard/domain/task"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskCreatedEvent is emitted after a task has been persisted.
type TaskCreatedEvent struct {
	Task task.View `json:"task"`
}

// TaskUpdatedEvent is emitted after a task has been updated.
// AssigneeSet records whether the update payload explicitly carried an
// assignee field; only then does the assignee get a targeted notification.
type TaskUpdatedEvent struct {
	Task        task.View `json:"task"`
	AssigneeSet bool      `json:"assigneeSet"`
}

// TaskDeletedEvent is emitted after a task has been removed.
// Only the identifier survives the deletion.
type TaskDeletedEvent struct {
	TaskID string `json:"taskId"`
}

// Event definitions for the task domain.
var (
	TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
		"task",
		"TaskCreated",
		"v1",
	)

	TaskUpdatedV1 = helper.EventDefinition[TaskUpdatedEvent](
		"task",
		"TaskUpdated",
		"v1",
	)

	TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
		"task",
		"TaskDeleted",
		"v1",
	)
)
