package tasks

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	task := New("conv-1", "index repository")

	if task.TaskID == "" {
		t.Error("expected generated task ID")
	}
	if task.ConversationID != "conv-1" {
		t.Errorf("expected conversation conv-1, got %s", task.ConversationID)
	}
	if task.Status != StatusPending {
		t.Errorf("expected status pending, got %s", task.Status)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("expected creation timestamps to be set")
	}

	other := New("conv-1", "index repository")
	if other.TaskID == task.TaskID {
		t.Error("expected distinct IDs for distinct tasks")
	}
}

func TestTaskStart(t *testing.T) {
	task := New("conv-1", "work")
	updated := task.UpdatedAt

	time.Sleep(time.Millisecond)
	task.Start()

	if task.Status != StatusRunning {
		t.Errorf("expected running, got %s", task.Status)
	}
	if task.StartedAt == nil {
		t.Error("expected StartedAt to be set")
	}
	if !task.UpdatedAt.After(updated) {
		t.Error("expected Start to stamp UpdatedAt")
	}
}

func TestTaskTerminalTransitions(t *testing.T) {
	tests := []struct {
		name       string
		transition func(*Task)
		status     TaskStatus
		errMsg     string
	}{
		{"complete", func(task *Task) { task.Complete() }, StatusCompleted, ""},
		{"fail", func(task *Task) { task.Fail("boom") }, StatusFailed, "boom"},
		{"cancel", func(task *Task) { task.Cancel() }, StatusCancelled, ""},
	}

	for _, tt := range tests {
		task := New("conv-1", "work")
		tt.transition(task)

		if task.Status != tt.status {
			t.Errorf("%s: expected status %s, got %s", tt.name, tt.status, task.Status)
		}
		if task.CompletedAt == nil {
			t.Errorf("%s: expected CompletedAt to be set", tt.name)
		}
		if task.Error != tt.errMsg {
			t.Errorf("%s: expected error %q, got %q", tt.name, tt.errMsg, task.Error)
		}
		if !task.IsFinished() {
			t.Errorf("%s: expected task to be finished", tt.name)
		}
	}
}

func TestTaskStatusIsFinished(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		finished bool
	}{
		{StatusPending, false},
		{StatusRunning, false},
		{StatusCompleted, true},
		{StatusFailed, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		if tt.status.IsFinished() != tt.finished {
			t.Errorf("status %s: expected finished=%v, got %v", tt.status, tt.finished, !tt.finished)
		}
	}
}

func TestTaskStatusValid(t *testing.T) {
	for _, s := range []TaskStatus{StatusPending, StatusRunning, StatusCompleted, StatusFailed, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("status %s should be valid", s)
		}
	}
	if TaskStatus("paused").Valid() {
		t.Error("unknown status should be invalid")
	}
	if TaskStatus("").Valid() {
		t.Error("empty status should be invalid")
	}
}

func TestTaskStatusString(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected string
	}{
		{StatusPending, "pending"},
		{StatusRunning, "running"},
		{StatusCompleted, "completed"},
		{StatusFailed, "failed"},
		{StatusCancelled, "cancelled"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.expected {
			t.Errorf("status %v.String() = %s, want %s", tt.status, got, tt.expected)
		}
	}
}

func TestTaskClone(t *testing.T) {
	task := New("conv-1", "work")
	task.Start()
	task.Fail("boom")

	clone := task.Clone()

	if clone.TaskID != task.TaskID || clone.Status != task.Status || clone.Error != task.Error {
		t.Error("clone should copy all fields")
	}
	if clone.StartedAt == task.StartedAt || clone.CompletedAt == task.CompletedAt {
		t.Error("clone should not share timestamp pointers")
	}

	*clone.StartedAt = time.Time{}
	clone.Status = StatusPending
	if task.StartedAt.IsZero() || task.Status != StatusFailed {
		t.Error("mutating clone should not affect original")
	}
}

func TestTaskCloneNilTimestamps(t *testing.T) {
	task := New("conv-1", "work")
	clone := task.Clone()

	if clone.StartedAt != nil || clone.CompletedAt != nil {
		t.Error("expected nil timestamps in clone of pending task")
	}
}
