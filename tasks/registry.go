package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/vinayprograms/tasktrack/logging"
)

// Registry is a process-local, in-memory registry of tasks keyed by task ID.
//
// A single mutex serializes every operation, so each call observes and
// mutates a consistent snapshot of the map. Status checks and the writes
// they gate happen inside one critical section. Nothing blocks while the
// guard is held: lookups and transitions are pure memory operations, and
// log output is emitted only after the guard is released.
//
// Transitions that cannot proceed (unknown ID, wrong current status) report
// failure through the boolean result rather than an error value. Callers
// that need to distinguish the two cases must Get first and accept the
// race window between calls.
type Registry struct {
	mu     sync.Mutex
	tasks  map[string]*Task
	logger *logging.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets a logger for task transitions. Without one the
// registry is silent.
func WithLogger(logger *logging.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty task registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		tasks: make(map[string]*Task),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record stores the task keyed by its TaskID, overwriting any prior record,
// and stamps UpdatedAt. The registry takes ownership of the task: after
// recording, mutate it only through registry operations.
//
// Record is the only operation that touches UpdatedAt at the registry
// level. The transition operations leave timestamps to the task's own
// transition method so the stamp is not applied twice.
func (r *Registry) Record(ctx context.Context, task *Task) {
	// Field reads for logging happen before publication: once the task is
	// in the map another goroutine may transition it.
	taskID, conversationID, status := task.TaskID, task.ConversationID, task.Status
	r.record(task)
	if r.logger != nil {
		r.logger.TaskRecorded(taskID, conversationID, status.String())
	}
}

func (r *Registry) record(task *Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.UpdatedAt = time.Now()
	r.tasks[task.TaskID] = task
}

// Begin transitions a task from pending to running. It returns false if
// the task does not exist or is not pending; the task is left unchanged.
//
// Begin is stricter than Complete, Fail, and Cancel: it is only legal
// from pending, never from running or a terminal status.
func (r *Registry) Begin(ctx context.Context, taskID string) bool {
	if !r.begin(taskID) {
		return false
	}
	if r.logger != nil {
		r.logger.TaskStarted(taskID)
	}
	return true
}

func (r *Registry) begin(taskID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.Status != StatusPending {
		return false
	}

	task.Start()
	return true
}

// Complete transitions a task to completed. It returns false if the task
// does not exist or is already finished; the task is left unchanged.
//
// Any non-finished task may be completed, including one still pending.
func (r *Registry) Complete(ctx context.Context, taskID string) bool {
	if !r.finishTask(taskID, StatusCompleted, "") {
		return false
	}
	if r.logger != nil {
		r.logger.TaskCompleted(taskID)
	}
	return true
}

// Fail transitions a task to failed, attaching the error message. It
// returns false if the task does not exist or is already finished; the
// task is left unchanged.
func (r *Registry) Fail(ctx context.Context, taskID, errorMessage string) bool {
	if !r.finishTask(taskID, StatusFailed, errorMessage) {
		return false
	}
	if r.logger != nil {
		r.logger.TaskFailed(taskID, errorMessage)
	}
	return true
}

// Cancel transitions a task to cancelled. It returns false if the task
// does not exist or is already finished; the task is left unchanged.
func (r *Registry) Cancel(ctx context.Context, taskID string) bool {
	if !r.finishTask(taskID, StatusCancelled, "") {
		return false
	}
	if r.logger != nil {
		r.logger.TaskCancelled(taskID)
	}
	return true
}

// finishTask applies a terminal transition to a task that exists and is
// not already finished.
func (r *Registry) finishTask(taskID string, status TaskStatus, errorMessage string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.IsFinished() {
		return false
	}

	switch status {
	case StatusCompleted:
		task.Complete()
	case StatusFailed:
		task.Fail(errorMessage)
	case StatusCancelled:
		task.Cancel()
	}
	return true
}

// CancelConversation cancels every not-yet-finished task in a conversation
// and returns the number of tasks cancelled. Tasks already finished keep
// their status and are not counted.
//
// The scan and all writes happen under one guard acquisition, so the
// batch observes a single consistent snapshot of the registry.
func (r *Registry) CancelConversation(ctx context.Context, conversationID string) int {
	cancelled := r.cancelConversation(conversationID)
	if r.logger != nil {
		r.logger.ConversationCancelled(conversationID, cancelled)
	}
	return cancelled
}

func (r *Registry) cancelConversation(conversationID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cancelled := 0
	for _, task := range r.tasks {
		if task.ConversationID != conversationID || task.IsFinished() {
			continue
		}
		task.Cancel()
		cancelled++
	}
	return cancelled
}

// Get retrieves a copy of a task by ID. The second result reports whether
// the task exists.
func (r *Registry) Get(ctx context.Context, taskID string) (*Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok {
		return nil, false
	}
	return task.Clone(), true
}

// List returns copies of all tasks matching the given status.
// If status is empty, all tasks are returned. Order is unspecified.
func (r *Registry) List(ctx context.Context, status TaskStatus) []*Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []*Task
	for _, task := range r.tasks {
		if status == "" || task.Status == status {
			tasks = append(tasks, task.Clone())
		}
	}
	return tasks
}

// ListConversation returns copies of all tasks in a conversation.
// Order is unspecified.
func (r *Registry) ListConversation(ctx context.Context, conversationID string) []*Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tasks []*Task
	for _, task := range r.tasks {
		if task.ConversationID == conversationID {
			tasks = append(tasks, task.Clone())
		}
	}
	return tasks
}
