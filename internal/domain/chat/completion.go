// Package chat contains the conversational assistant: the completion
// adapter contract, the task tool registry, and the orchestration loop
// that drives a single chat turn.
package chat

import (
	"context"

	"todo-server/internal/domain/conversation"
)

// ToolDeclaration describes one callable tool to the model. Parameters is a
// JSON-schema object.
type ToolDeclaration struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Decision is the outcome of one completion call: either final assistant
// text, or a set of tool calls to execute (in order) before continuing.
type Decision struct {
	Content   string
	ToolCalls []conversation.ToolCall
}

// IsToolCall reports whether the model asked for tools instead of answering.
func (d *Decision) IsToolCall() bool { return len(d.ToolCalls) > 0 }

// Adapter abstracts the completion backend. Implementations translate the
// transcript and tool declarations into provider wire formats and report
// failures through the completion error kind.
type Adapter interface {
	Complete(ctx context.Context, history []*conversation.Message, tools []ToolDeclaration) (*Decision, error)
}
