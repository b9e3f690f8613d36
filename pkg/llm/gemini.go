package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/donorconnect/donor-api/config"
)

// Gemini calls the Gemini API through the genai SDK.
type Gemini struct {
	client      *genai.Client
	model       string
	timeout     time.Duration
	temperature float32
}

func NewGemini(ctx context.Context, cfg config.GenAIConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		client:      client,
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		temperature: cfg.Temperature,
	}, nil
}

func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.Schema
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate (%s): %w", g.model, err)
	}

	text := strings.TrimSpace(resp.Text())
	log.Debug().
		Str("model", g.model).
		Dur("latency", time.Since(start)).
		Int("chars", len(text)).
		Msg("gemini response")

	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
