// Package tasks tracks the lifecycle of conversation-scoped tasks in memory.
//
// A Registry owns a map of tasks keyed by task ID and serializes every
// read and write behind a single mutex. Tasks move through a small state
// machine; conversations group tasks for batch cancellation.
//
// # Basic Usage
//
// Create a registry, record a task, and drive it through its lifecycle:
//
//	reg := tasks.NewRegistry()
//
//	task := tasks.New("conv-1", "index repository")
//	reg.Record(ctx, task)
//
//	reg.Begin(ctx, task.TaskID)    // pending → running
//	reg.Complete(ctx, task.TaskID) // running → completed
//
// Transition operations return a boolean: false means the task was either
// unknown or not in a state that allows the transition. No mutation occurs
// on failure.
//
// # Task Lifecycle
//
// Tasks move through the following states:
//
//	Pending → Running → Completed | Failed | Cancelled
//	   └────────────────→ Completed | Failed | Cancelled
//
// Begin is only legal from Pending. Complete, Fail, and Cancel accept any
// task that is not yet finished, so a pending task can be cancelled or
// completed without ever running. Completed, Failed, and Cancelled are
// terminal: every further transition returns false.
//
// # Batch Cancellation
//
// CancelConversation cancels all unfinished tasks in one conversation
// under a single guard acquisition and reports how many were cancelled:
//
//	n := reg.CancelConversation(ctx, "conv-1")
//
// Tasks that already finished keep their status and are not counted.
//
// # Thread Safety
//
// All Registry operations are safe for concurrent use. One exclusive
// guard covers the whole registry, so concurrent calls are totally
// ordered and the outcome always matches some serial interleaving.
// Reads return deep copies; registry-owned tasks are never exposed for
// mutation outside the guard.
//
// The registry is not a durable store. State lives in process memory and
// is lost on restart; no cross-process coordination is provided.
package tasks
