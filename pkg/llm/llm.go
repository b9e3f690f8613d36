// Package llm is the narrow seam between the services and the hosted
// generative model.
package llm

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

var (
	// ErrNotConfigured is returned when no API key was provided.
	ErrNotConfigured = errors.New("generative service is not configured")
	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("generative service returned an empty response")
)

// Request is one prompt. When Schema is set the model is asked for JSON
// conforming to it.
type Request struct {
	Prompt string
	Schema *genai.Schema
}

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Unconfigured fails every call with ErrNotConfigured so the API can start
// without credentials and report the matchmaker as unavailable.
var Unconfigured Generator = GeneratorFunc(func(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
})
