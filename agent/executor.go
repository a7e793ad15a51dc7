package agent

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/tools"
)

// ToolInvocation names a tool and carries its input string.
type ToolInvocation struct {
	Tool      string
	ToolInput string
}

// ToolExecutor dispatches invocations to tools by name.
type ToolExecutor struct {
	tools map[string]tools.Tool
}

// NewToolExecutor indexes the given tools by Name().
func NewToolExecutor(inputTools []tools.Tool) *ToolExecutor {
	m := make(map[string]tools.Tool, len(inputTools))
	for _, t := range inputTools {
		m[t.Name()] = t
	}
	return &ToolExecutor{tools: m}
}

// Execute runs the named tool and returns its output.
func (e *ToolExecutor) Execute(ctx context.Context, invocation ToolInvocation) (string, error) {
	t, ok := e.tools[invocation.Tool]
	if !ok {
		return "", fmt.Errorf("tool not found: %s", invocation.Tool)
	}
	return t.Call(ctx, invocation.ToolInput)
}
