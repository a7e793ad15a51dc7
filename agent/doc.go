// Package agent implements a tool-calling chat agent.
//
// An Agent wraps a langchaingo model and a set of tools. Invoke loops
// the model, executing requested tool calls and feeding the results
// back, until the model answers in plain text or the iteration cap is
// hit. The configuration record passed to Invoke supplies the thread
// identity, an optional checkpoint store for resumable conversations
// and an optional memory block for durable history.
package agent
