package task

import (
	"time"

	domain "github.com/example/taskboard/domain/task"
	"gorm.io/gorm"
)

// Filter is the set of optional list predicates. Zero-valued fields
// impose no constraint; supplied fields combine conjunctively.
type Filter struct {
	Status       domain.Status
	Priority     domain.Priority
	AssignedToID string
	CreatorID    string
	Overdue      bool
}

// SortKey identifies a sortable task field.
type SortKey string

// Sortable fields. The values match the wire field names accepted by
// the list endpoint's sortBy parameter.
const (
	SortByDueDate   SortKey = "dueDate"
	SortByCreatedAt SortKey = "createdAt"
	SortByUpdatedAt SortKey = "updatedAt"
	SortByTitle     SortKey = "title"
	SortByPriority  SortKey = "priority"
	SortByStatus    SortKey = "status"
)

var sortColumns = map[SortKey]string{
	SortByDueDate:   "due_date",
	SortByCreatedAt: "created_at",
	SortByUpdatedAt: "updated_at",
	SortByTitle:     "title",
	SortByPriority:  "priority",
	SortByStatus:    "status",
}

// Valid reports whether k names a sortable field.
func (k SortKey) Valid() bool {
	_, ok := sortColumns[k]
	return ok
}

// Sort is a single-key sort specification. The zero value sorts
// ascending by due date.
type Sort struct {
	Key        SortKey
	Descending bool
}

// buildQuery translates a filter and sort into a store query.
// Overdue is a derived predicate computed against now, not a stored
// field: due date strictly in the past and status not Completed.
func buildQuery(db *gorm.DB, f Filter, s Sort, now time.Time) *gorm.DB {
	q := db.Model(&domain.Task{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.AssignedToID != "" {
		q = q.Where("assigned_to_id = ?", f.AssignedToID)
	}
	if f.CreatorID != "" {
		q = q.Where("creator_id = ?", f.CreatorID)
	}
	if f.Overdue {
		q = q.Where("due_date < ?", now).Where("status <> ?", domain.StatusCompleted)
	}

	key := s.Key
	if key == "" {
		key = SortByDueDate
	}
	column := sortColumns[key]
	if s.Descending {
		column += " DESC"
	}
	return q.Order(column)
}
