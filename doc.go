// Package academy assembles the runtime configuration for
// conversational agents: thread identity, knowledge graph connection,
// conversation memory and checkpoint persistence, bundled into one
// record that travels with each invocation.
//
// # Quick Start
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/tmc/langchaingo/llms"
//		"github.com/tmc/langchaingo/llms/openai"
//		"github.com/tmc/langchaingo/tools"
//
//		"github.com/TrungNguyen1409/langchain-academy/agent"
//		"github.com/TrungNguyen1409/langchain-academy/config"
//		"github.com/TrungNguyen1409/langchain-academy/tool"
//	)
//
//	func main() {
//		llm, _ := openai.New()
//
//		cfg, _ := config.NewBuilder().
//			WithThreadID("conversation_1").
//			WithCheckpointing("sqlite:///checkpoints.db").
//			Build()
//		defer cfg.Configurable.CheckpointStore.Close()
//
//		a := agent.New(llm, []tools.Tool{tool.Add{}, tool.Weather{}})
//		res, _ := a.Invoke(context.Background(),
//			[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, "What is 2 plus 3?")}, cfg)
//		fmt.Println(res.FinalText())
//	}
//
// # Packages
//
//   - config: configuration records, the fluent builder and the
//     checkpoint connection string dispatcher
//   - agent: the tool-calling loop with checkpoint resume
//   - store and subpackages: checkpoint persistence over memory,
//     sqlite, postgres and redis
//   - graphdb: knowledge graph storage behind the config's graph
//     database variants
//   - memory: durable conversation history
//   - tool: deterministic demonstration tools
//   - log: leveled logging with an optional golog adapter
package academy
