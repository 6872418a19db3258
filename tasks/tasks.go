package tasks

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the current lifecycle state of a task.
type TaskStatus string

const (
	// StatusPending indicates the task has been recorded but not started.
	StatusPending TaskStatus = "pending"

	// StatusRunning indicates the task is being worked on.
	StatusRunning TaskStatus = "running"

	// StatusCompleted indicates the task finished successfully.
	StatusCompleted TaskStatus = "completed"

	// StatusFailed indicates the task finished with an error.
	StatusFailed TaskStatus = "failed"

	// StatusCancelled indicates the task was cancelled before finishing.
	StatusCancelled TaskStatus = "cancelled"
)

// String returns the string representation of the status.
func (s TaskStatus) String() string {
	return string(s)
}

// Valid returns true if the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsFinished returns true if the status is terminal. Finished tasks
// accept no further transitions.
func (s TaskStatus) IsFinished() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Task is a unit of work tracked by identifier and status.
// Tasks are grouped by conversation for batch operations.
type Task struct {
	// TaskID uniquely identifies the task. Stable for its lifetime.
	TaskID string `json:"task_id"`

	// ConversationID groups related tasks.
	ConversationID string `json:"conversation_id"`

	// Title is a human-readable description of the work.
	Title string `json:"title,omitempty"`

	// Status is the current lifecycle state.
	Status TaskStatus `json:"status"`

	// Error is the failure message if Status is StatusFailed.
	Error string `json:"error,omitempty"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the task was last mutated.
	UpdatedAt time.Time `json:"updated_at"`

	// StartedAt is when the task began running.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is when the task reached a terminal status.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// New creates a pending task for a conversation with a generated ID.
// The task is not known to any registry until recorded.
func New(conversationID, title string) *Task {
	now := time.Now()
	return &Task{
		TaskID:         uuid.NewString(),
		ConversationID: conversationID,
		Title:          title,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsFinished returns true if the task is in a terminal status.
func (t *Task) IsFinished() bool {
	return t.Status.IsFinished()
}

// Start moves the task to running and stamps the start time.
// Callers must ensure the task is pending; Registry.Begin checks this
// under its guard before invoking Start.
func (t *Task) Start() {
	now := time.Now()
	t.Status = StatusRunning
	t.StartedAt = &now
	t.UpdatedAt = now
}

// Complete moves the task to completed and stamps the completion time.
// Callers must ensure the task is not already finished.
func (t *Task) Complete() {
	t.finish(StatusCompleted)
}

// Fail moves the task to failed, attaching the error message.
// Callers must ensure the task is not already finished.
func (t *Task) Fail(message string) {
	t.Error = message
	t.finish(StatusFailed)
}

// Cancel moves the task to cancelled.
// Callers must ensure the task is not already finished.
func (t *Task) Cancel() {
	t.finish(StatusCancelled)
}

// finish applies a terminal status and stamps the timestamps.
func (t *Task) finish(status TaskStatus) {
	now := time.Now()
	t.Status = status
	t.CompletedAt = &now
	t.UpdatedAt = now
}

// Clone creates a deep copy of the task.
func (t *Task) Clone() *Task {
	clone := &Task{
		TaskID:         t.TaskID,
		ConversationID: t.ConversationID,
		Title:          t.Title,
		Status:         t.Status,
		Error:          t.Error,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}

	if t.StartedAt != nil {
		started := *t.StartedAt
		clone.StartedAt = &started
	}

	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		clone.CompletedAt = &completed
	}

	return clone
}
