package models

import "strings"

// Status is a task lifecycle state. Any status may move to any other
// status directly; there is no transition graph.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every lifecycle state in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted}

// Category groups tasks for display.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Shopping"
	CategoryOther    Category = "Other"
)

var Categories = []Category{CategoryWork, CategoryPersonal, CategoryShopping, CategoryOther}

// Priority ranks a task's urgency.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Task is a single tracked item. Ids are unique within one user's
// collection and assigned monotonically. DueDate, when set, is an ISO
// calendar date (YYYY-MM-DD).
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Status      Status   `json:"status"`
	Category    Category `json:"category"`
	DueDate     *string  `json:"dueDate"`
	Priority    Priority `json:"priority"`
}

// TaskRecord is the wire form of a Task as found in a storage slot.
// Records written before the status field existed carry a boolean
// completed flag instead; Normalize maps those onto the current model.
type TaskRecord struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Completed   bool     `json:"completed,omitempty"`
	Category    Category `json:"category,omitempty"`
	DueDate     *string  `json:"dueDate,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
}

// Normalize converts a stored record into a Task, filling in the status
// from the legacy completed flag and defaulting absent category/priority.
func (r TaskRecord) Normalize() Task {
	status := r.Status
	if status == "" {
		if r.Completed {
			status = StatusCompleted
		} else {
			status = StatusTodo
		}
	}

	category := r.Category
	if category == "" {
		category = CategoryPersonal
	}

	priority := r.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	return Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      status,
		Category:    category,
		DueDate:     r.DueDate,
		Priority:    priority,
	}
}

// TaskPatch carries a partial update. Nil fields are left untouched;
// values are applied as given, with no validation or transition checks.
// For Description and DueDate a pointer to the empty string clears the
// field.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *Status
	Category    *Category
	DueDate     *string
	Priority    *Priority
}

// Apply merges the patch into the task.
func (t *Task) Apply(p TaskPatch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = optional(*p.Description)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.DueDate != nil {
		t.DueDate = optional(*p.DueDate)
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
}

// optional maps the empty string onto an absent field.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Optional is the exported form of optional, used when building tasks and
// patches from user input.
func Optional(s string) *string {
	return optional(s)
}
