package task

import (
	"time"

	"github.com/example/taskboard/domain/user"
)

// Priority is the urgency level of a task.
type Priority string

// Priority levels. The literal values are wire-visible and must not change.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// Valid reports whether p is a known priority level.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Status is the workflow state of a task.
type Status string

// Workflow states. Two of the literals contain a space; they are
// wire-visible and must round-trip verbatim.
const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusReview     Status = "Review"
	StatusCompleted  Status = "Completed"
)

// Valid reports whether s is a known workflow state.
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// MaxTitleLength is the maximum length of a task title.
const MaxTitleLength = 100

// Task represents a unit of work assigned to a user.
//
// Creator and AssignedTo are loaded on demand via the repository's
// reference expansion; the foreign keys are the persisted fields.
// Deletion is immediate and permanent, so there is no soft-delete column.
type Task struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Title        string     `gorm:"size:100;not null" json:"title"`
	Description  string     `gorm:"type:text;not null" json:"description"`
	DueDate      time.Time  `gorm:"not null;index" json:"dueDate"`
	Priority     Priority   `gorm:"size:16;not null" json:"priority"`
	Status       Status     `gorm:"size:16;not null" json:"status"`
	CreatorID    string     `gorm:"size:36;not null;index" json:"creatorId"`
	AssignedToID string     `gorm:"size:36;not null;index" json:"assignedToId"`
	Creator      *user.User `gorm:"foreignKey:CreatorID" json:"-"`
	AssignedTo   *user.User `gorm:"foreignKey:AssignedToID" json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// View is the wire representation of a task with both user references
// expanded into summaries. The creatorId/assignedToId keys carry the
// embedded summaries in place of the raw identifiers, mirroring the
// reference expansion the clients expect.
type View struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     time.Time    `json:"dueDate"`
	Priority    Priority     `json:"priority"`
	Status      Status       `json:"status"`
	Creator     user.Summary `json:"creatorId"`
	AssignedTo  user.Summary `json:"assignedToId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Expand builds the wire view of the task. References that were not
// loaded degrade to summaries carrying only the identifier.
func (t *Task) Expand() View {
	v := View{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Status:      t.Status,
		Creator:     user.Summary{ID: t.CreatorID},
		AssignedTo:  user.Summary{ID: t.AssignedToID},
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Creator != nil {
		v.Creator = t.Creator.Summarize()
	}
	if t.AssignedTo != nil {
		v.AssignedTo = t.AssignedTo.Summarize()
	}
	return v
}
