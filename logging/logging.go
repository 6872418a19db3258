// Package logging provides leveled console output for task tracking.
// Output is plain key=value text intended for real-time monitoring; the
// registry itself is the source of truth for task state.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logger provides structured logging to stdout.
type Logger struct {
	mu           sync.Mutex
	output       io.Writer
	minLevel     Level
	component    string
	conversation string
}

// levelPriority maps levels to numeric priority for filtering.
var levelPriority = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// New creates a new Logger.
func New() *Logger {
	return &Logger{
		output:   os.Stdout,
		minLevel: LevelInfo,
	}
}

// WithComponent returns a new logger with the given component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		output:       l.output,
		minLevel:     l.minLevel,
		component:    component,
		conversation: l.conversation,
	}
}

// WithConversation returns a new logger scoped to a conversation. The
// conversation ID is appended as a field on every entry.
func (l *Logger) WithConversation(conversationID string) *Logger {
	return &Logger{
		output:       l.output,
		minLevel:     l.minLevel,
		component:    l.component,
		conversation: conversationID,
	}
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.minLevel = level
}

// SetOutput sets the output writer (default: stdout).
func (l *Logger) SetOutput(w io.Writer) {
	l.output = w
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.log(LevelDebug, msg, fields...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.log(LevelError, msg, fields...)
}

// formatFields formats a map of fields as key=value pairs.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	var parts []string
	for k, v := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return " " + strings.Join(parts, " ")
}

// log writes a log entry in traditional format: LEVEL TIMESTAMP [component] message key=value ...
func (l *Logger) log(level Level, msg string, fields ...map[string]interface{}) {
	if levelPriority[level] < levelPriority[l.minLevel] {
		return
	}

	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	var fieldStr string
	if len(fields) > 0 && fields[0] != nil {
		fieldStr = formatFields(fields[0])
	}
	if l.conversation != "" {
		fieldStr += " conversation=" + l.conversation
	}

	var line string
	if l.component != "" {
		line = fmt.Sprintf("%-5s %s [%s] %s%s\n", level, timestamp, l.component, msg, fieldStr)
	} else {
		line = fmt.Sprintf("%-5s %s %s%s\n", level, timestamp, msg, fieldStr)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.output.Write([]byte(line))
}

// --- Task-derived logging methods ---
// Called by the registry after a transition has been applied and its
// guard released. They are real-time output only.

// TaskRecorded logs a task being stored in the registry.
func (l *Logger) TaskRecorded(taskID, conversationID, status string) {
	l.Debug("task_recorded", map[string]interface{}{
		"task":         taskID,
		"conversation": conversationID,
		"status":       status,
	})
}

// TaskStarted logs a pending task moving to running.
func (l *Logger) TaskStarted(taskID string) {
	l.Info("task_started", map[string]interface{}{
		"task": taskID,
	})
}

// TaskCompleted logs a task reaching completed.
func (l *Logger) TaskCompleted(taskID string) {
	l.Info("task_completed", map[string]interface{}{
		"task": taskID,
	})
}

// TaskFailed logs a task reaching failed.
func (l *Logger) TaskFailed(taskID, errorMessage string) {
	fields := map[string]interface{}{
		"task": taskID,
	}
	if errorMessage != "" {
		fields["error"] = errorMessage
	}
	l.Error("task_failed", fields)
}

// TaskCancelled logs a task reaching cancelled.
func (l *Logger) TaskCancelled(taskID string) {
	l.Info("task_cancelled", map[string]interface{}{
		"task": taskID,
	})
}

// ConversationCancelled logs a batch cancellation of a conversation.
func (l *Logger) ConversationCancelled(conversationID string, cancelled int) {
	l.Info("conversation_cancelled", map[string]interface{}{
		"conversation": conversationID,
		"cancelled":    cancelled,
	})
}
