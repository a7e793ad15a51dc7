package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/tools"

	"github.com/TrungNguyen1409/langchain-academy/log"
)

// Add adds two integers. It exists as a deterministic demonstration
// tool so agent runs can be verified without external services.
type Add struct{}

var _ tools.Tool = Add{}

// Name returns the tool name used in model tool calls.
func (Add) Name() string {
	return "add_numbers"
}

// Description tells the model when to use the tool.
func (Add) Description() string {
	return "Add two integers. Input is either a JSON object {\"a\": 2, \"b\": 3} or two whitespace-separated integers."
}

// Call parses two integers from the input and returns their sum.
func (Add) Call(ctx context.Context, input string) (string, error) {
	a, b, err := parseAddInput(input)
	if err != nil {
		return "", err
	}

	log.Debug("add_numbers: %d + %d", a, b)
	return strconv.Itoa(a + b), nil
}

func parseAddInput(input string) (int, int, error) {
	input = strings.TrimSpace(input)

	if strings.HasPrefix(input, "{") {
		var args struct {
			A json.Number `json:"a"`
			B json.Number `json:"b"`
		}
		if err := json.Unmarshal([]byte(input), &args); err != nil {
			return 0, 0, fmt.Errorf("invalid add_numbers input: %w", err)
		}
		a, errA := strconv.Atoi(args.A.String())
		b, errB := strconv.Atoi(args.B.String())
		if errA != nil || errB != nil {
			return 0, 0, fmt.Errorf("add_numbers expects two integers, got a=%q b=%q", args.A, args.B)
		}
		return a, b, nil
	}

	fields := strings.Fields(strings.Map(func(r rune) rune {
		if r == ',' {
			return ' '
		}
		return r
	}, input))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("add_numbers expects two integers, got %q", input)
	}
	a, errA := strconv.Atoi(fields[0])
	b, errB := strconv.Atoi(fields[1])
	if errA != nil || errB != nil {
		return 0, 0, fmt.Errorf("add_numbers expects two integers, got %q", input)
	}
	return a, b, nil
}
