// Package assistant holds the free-text generative flows: the donor chatbot
// and the blood-drive feedback summarizer.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/donorconnect/donor-api/pkg/circuitbreaker"
	"github.com/donorconnect/donor-api/pkg/llm"
	"github.com/donorconnect/donor-api/pkg/metrics"
)

type Options struct {
	Breaker *circuitbreaker.CircuitBreaker
	Metrics *metrics.Metrics
}

// generateField asks for {"<name>": string} and returns the field value.
func generateField(ctx context.Context, gen llm.Generator, opts Options, flow, prompt, name, description string) (string, error) {
	req := llm.Request{
		Prompt: prompt,
		Schema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				name: {Type: genai.TypeString, Description: description},
			},
			Required: []string{name},
		},
	}

	start := time.Now()
	var raw string
	call := func() error {
		var err error
		raw, err = gen.Generate(ctx, req)
		return err
	}

	var err error
	if opts.Breaker != nil {
		err = opts.Breaker.Execute(call)
	} else {
		err = call()
	}

	var value string
	if err == nil {
		value, err = decodeField(raw, name)
	}
	if opts.Metrics != nil {
		opts.Metrics.ObserveGenAI(flow, time.Since(start).Seconds(), err)
	}
	return value, err
}

func decodeField(raw, name string) (string, error) {
	var out map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return "", fmt.Errorf("decode %s response: %w", name, err)
	}
	var value string
	if err := json.Unmarshal(out[name], &value); err != nil {
		return "", fmt.Errorf("response has no string %q: %w", name, err)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("response %q is empty", name)
	}
	return value, nil
}
