package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/tools"

	"github.com/TrungNguyen1409/langchain-academy/config"
	"github.com/TrungNguyen1409/langchain-academy/log"
	"github.com/TrungNguyen1409/langchain-academy/memory"
	"github.com/TrungNguyen1409/langchain-academy/store"
)

const defaultMaxIterations = 20

// Agent runs a tool-calling loop over a chat model. Persistence and
// identity come from the configuration record passed to Invoke, not
// from the agent itself, so one agent serves many threads.
type Agent struct {
	model         llms.Model
	tools         []tools.Tool
	executor      *ToolExecutor
	systemMessage string
	maxIterations int
	logger        log.Logger
}

// Option customizes an Agent.
type Option func(*Agent)

// WithSystemMessage prepends a system message to every invocation.
func WithSystemMessage(msg string) Option {
	return func(a *Agent) { a.systemMessage = msg }
}

// WithMaxIterations caps the number of model rounds per invocation.
func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxIterations = n
		}
	}
}

// WithLogger replaces the package default logger.
func WithLogger(logger log.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

// New creates an agent over the model and tools.
func New(model llms.Model, inputTools []tools.Tool, opts ...Option) *Agent {
	a := &Agent{
		model:         model,
		tools:         inputTools,
		executor:      NewToolExecutor(inputTools),
		maxIterations: defaultMaxIterations,
		logger:        log.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result is the outcome of one invocation.
type Result struct {
	// Messages is the full conversation, restored context included.
	Messages []llms.MessageContent

	// Checkpoint is the last checkpoint saved during the run, nil
	// when the configuration carries no checkpoint store.
	Checkpoint *store.Checkpoint
}

// FinalText returns the text of the last AI message, empty when the
// run produced none.
func (r *Result) FinalText() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == llms.ChatMessageTypeAI {
			return flattenParts(r.Messages[i].Parts)
		}
	}
	return ""
}

// Invoke runs the tool-calling loop until the model answers without
// requesting a tool, or the iteration cap is hit. When cfg carries a
// checkpoint store and thread id, the run resumes from the latest
// checkpoint of that thread and saves a new checkpoint after every
// model round. When cfg carries a memory block, the exchange is also
// recorded there.
func (a *Agent) Invoke(ctx context.Context, input []llms.MessageContent, cfg *config.Config) (*Result, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("no input messages")
	}

	var conf config.Configurable
	if cfg != nil {
		conf = cfg.Configurable
	}

	messages, err := a.assembleContext(ctx, conf, input)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	toolDefs := a.toolDefs()

	for iteration := 0; ; iteration++ {
		if iteration >= a.maxIterations {
			a.logger.Warn("thread %s: iteration cap %d reached", conf.ThreadID, a.maxIterations)
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI,
				"Maximum iterations reached. Please try a simpler query."))
			break
		}

		resp, err := a.model.GenerateContent(ctx, messages, llms.WithTools(toolDefs))
		if err != nil {
			return nil, fmt.Errorf("model call failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("model returned no choices")
		}
		choice := resp.Choices[0]

		aiMsg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if choice.Content != "" {
			aiMsg.Parts = append(aiMsg.Parts, llms.TextPart(choice.Content))
		}
		for _, tc := range choice.ToolCalls {
			aiMsg.Parts = append(aiMsg.Parts, tc)
		}
		messages = append(messages, aiMsg)

		if len(choice.ToolCalls) == 0 {
			if cp, err := a.saveCheckpoint(ctx, conf, messages, iteration); err != nil {
				return nil, err
			} else if cp != nil {
				result.Checkpoint = cp
			}
			break
		}

		messages = append(messages, a.runToolCalls(ctx, choice.ToolCalls)...)

		if cp, err := a.saveCheckpoint(ctx, conf, messages, iteration); err != nil {
			return nil, err
		} else if cp != nil {
			result.Checkpoint = cp
		}
	}

	if err := a.recordMemory(ctx, conf, input, messages); err != nil {
		return nil, err
	}

	result.Messages = messages
	return result, nil
}

// assembleContext builds the message list for a run: system message,
// then restored checkpoint context, then the new input.
func (a *Agent) assembleContext(ctx context.Context, conf config.Configurable, input []llms.MessageContent) ([]llms.MessageContent, error) {
	var messages []llms.MessageContent
	if a.systemMessage != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, a.systemMessage))
	}

	if conf.CheckpointStore != nil && conf.ThreadID != "" {
		latest, err := conf.CheckpointStore.Latest(ctx, conf.ThreadID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			// fresh thread
		case err != nil:
			return nil, fmt.Errorf("failed to load latest checkpoint: %w", err)
		default:
			restored, err := messagesFromState(latest.State)
			if err != nil {
				return nil, err
			}
			a.logger.Debug("thread %s: resumed %d messages from checkpoint %s",
				conf.ThreadID, len(restored), latest.ID)
			messages = append(messages, restored...)
		}
	}

	return append(messages, input...), nil
}

func (a *Agent) toolDefs() []llms.Tool {
	var toolDefs []llms.Tool
	for _, t := range a.tools {
		toolDefs = append(toolDefs, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"input": map[string]any{
							"type":        "string",
							"description": "The input query for the tool",
						},
					},
					"required":             []string{"input"},
					"additionalProperties": false,
				},
			},
		})
	}
	return toolDefs
}

// runToolCalls executes each requested tool and returns the tool
// response messages. Tool failures become response content so the
// model can react to them.
func (a *Agent) runToolCalls(ctx context.Context, toolCalls []llms.ToolCall) []llms.MessageContent {
	var toolMessages []llms.MessageContent
	for _, tc := range toolCalls {
		var args map[string]any
		_ = json.Unmarshal([]byte(tc.FunctionCall.Arguments), &args)

		inputVal := tc.FunctionCall.Arguments
		if val, ok := args["input"].(string); ok {
			inputVal = val
		}

		res, err := a.executor.Execute(ctx, ToolInvocation{
			Tool:      tc.FunctionCall.Name,
			ToolInput: inputVal,
		})
		if err != nil {
			a.logger.Warn("tool %s failed: %v", tc.FunctionCall.Name, err)
			res = fmt.Sprintf("Error: %v", err)
		} else {
			a.logger.Debug("tool %s returned %d bytes", tc.FunctionCall.Name, len(res))
		}

		toolMessages = append(toolMessages, llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{
				llms.ToolCallResponse{
					ToolCallID: tc.ID,
					Name:       tc.FunctionCall.Name,
					Content:    res,
				},
			},
		})
	}
	return toolMessages
}

func (a *Agent) saveCheckpoint(ctx context.Context, conf config.Configurable, messages []llms.MessageContent, step int) (*store.Checkpoint, error) {
	if conf.CheckpointStore == nil || conf.ThreadID == "" {
		return nil, nil
	}

	existing, err := conf.CheckpointStore.List(ctx, conf.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}

	cp := &store.Checkpoint{
		ID:       store.NewCheckpointID(),
		ThreadID: conf.ThreadID,
		Step:     step,
		State:    transcriptFromMessages(messages),
		Metadata: map[string]any{
			"user_id":    conf.UserID,
			"session_id": conf.SessionID,
		},
		Timestamp: time.Now().UTC(),
		Version:   store.NextVersion(existing),
	}
	if err := conf.CheckpointStore.Save(ctx, cp); err != nil {
		return nil, fmt.Errorf("failed to save checkpoint: %w", err)
	}

	a.logger.Debug("thread %s: saved checkpoint %s (version %d)", conf.ThreadID, cp.ID, cp.Version)
	return cp, nil
}

// recordMemory appends the new human turns and the final AI answer to
// the configured conversation memory.
func (a *Agent) recordMemory(ctx context.Context, conf config.Configurable, input, messages []llms.MessageContent) error {
	if conf.Memory == nil {
		return nil
	}

	mem, err := memory.Open(conf.Memory)
	if err != nil {
		return fmt.Errorf("failed to open memory: %w", err)
	}
	defer mem.Close()

	for _, msg := range input {
		if err := mem.Append(ctx, conf.ThreadID, &memory.Message{
			Role:    string(msg.Role),
			Content: flattenParts(msg.Parts),
		}); err != nil {
			return fmt.Errorf("failed to record memory: %w", err)
		}
	}

	if len(messages) > 0 {
		last := messages[len(messages)-1]
		if last.Role == llms.ChatMessageTypeAI {
			if err := mem.Append(ctx, conf.ThreadID, &memory.Message{
				Role:    string(last.Role),
				Content: flattenParts(last.Parts),
			}); err != nil {
				return fmt.Errorf("failed to record memory: %w", err)
			}
		}
	}

	return nil
}
