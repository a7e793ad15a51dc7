package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/tools"

	"github.com/TrungNguyen1409/langchain-academy/log"
)

// Weather reports a canned forecast for a location. Like Add it is a
// deterministic demonstration tool, no external API involved.
type Weather struct{}

var _ tools.Tool = Weather{}

// Name returns the tool name used in model tool calls.
func (Weather) Name() string {
	return "get_weather"
}

// Description tells the model when to use the tool.
func (Weather) Description() string {
	return "Get the current weather for a location. Input is either a JSON object {\"location\": \"Paris\"} or the location name itself."
}

// Call returns the forecast for the given location.
func (Weather) Call(ctx context.Context, input string) (string, error) {
	location, err := parseWeatherInput(input)
	if err != nil {
		return "", err
	}

	log.Debug("get_weather: %s", location)
	return fmt.Sprintf("The weather in %s is sunny and 72°F", location), nil
}

func parseWeatherInput(input string) (string, error) {
	input = strings.TrimSpace(input)

	if strings.HasPrefix(input, "{") {
		var args struct {
			Location string `json:"location"`
		}
		if err := json.Unmarshal([]byte(input), &args); err != nil {
			return "", fmt.Errorf("invalid get_weather input: %w", err)
		}
		input = strings.TrimSpace(args.Location)
	}

	input = strings.Trim(input, `"`)
	if input == "" {
		return "", fmt.Errorf("get_weather expects a location")
	}
	return input, nil
}
