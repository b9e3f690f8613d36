package matchmaker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/pkg/circuitbreaker"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
	"github.com/donorconnect/donor-api/pkg/llm"
	"github.com/donorconnect/donor-api/pkg/metrics"
	"github.com/donorconnect/donor-api/pkg/validator"
)

// UnavailableMessage is shown to operators whenever matchmaking fails.
const UnavailableMessage = "The AI matchmaker is currently unavailable. Please try again later."

const flow = "matchmaker"

type Matcher interface {
	FindMatches(ctx context.Context, q model.MatchQuery) ([]model.DonorMatch, error)
}

// response is the payload the model returns. Length and per-item bounds are
// checked here as well as in the request schema.
type response struct {
	Matches []wireMatch `json:"matches" validate:"required,min=3,max=5,dive"`
}

// wireMatch uses pointers so an omitted score or availability is rejected
// instead of decoding to its zero value.
type wireMatch struct {
	DonorName   string `json:"donorName" validate:"required"`
	DonorID     string `json:"donorId" validate:"required"`
	MatchScore  *int   `json:"matchScore" validate:"required,min=0,max=100"`
	Location    string `json:"location" validate:"required"`
	IsAvailable *bool  `json:"isAvailable" validate:"required"`
}

func (w wireMatch) toModel() model.DonorMatch {
	return model.DonorMatch{
		DonorName:   w.DonorName,
		DonorID:     w.DonorID,
		MatchScore:  *w.MatchScore,
		Location:    w.Location,
		IsAvailable: *w.IsAvailable,
	}
}

type Options struct {
	// SampleDonor is quoted in the prompt as an example registered donor.
	SampleDonor *model.Donor
	Breaker     *circuitbreaker.CircuitBreaker
	Metrics     *metrics.Metrics
}

type Service struct {
	gen      llm.Generator
	validate validator.Validator
	sample   *model.Donor
	breaker  *circuitbreaker.CircuitBreaker
	metrics  *metrics.Metrics
}

func NewService(gen llm.Generator, opts Options) *Service {
	return &Service{
		gen:      gen,
		validate: validator.New(),
		sample:   opts.SampleDonor,
		breaker:  opts.Breaker,
		metrics:  opts.Metrics,
	}
}

// FindMatches asks the generative service for 3-5 candidate donors. Every
// upstream, decoding or shape failure is reported as one unavailable error;
// nothing is retried or cached.
func (s *Service) FindMatches(ctx context.Context, q model.MatchQuery) ([]model.DonorMatch, error) {
	if err := s.validate.Validate(q); err != nil {
		return nil, apperrors.NewValidation("Request details are missing.", err)
	}

	req := llm.Request{
		Prompt: BuildPrompt(q, s.sample),
		Schema: ResponseSchema(),
	}

	start := time.Now()
	var raw string
	call := func() error {
		var err error
		raw, err = s.gen.Generate(ctx, req)
		return err
	}

	var err error
	if s.breaker != nil {
		err = s.breaker.Execute(call)
	} else {
		err = call()
	}

	var matches []model.DonorMatch
	if err == nil {
		matches, err = s.decode(raw)
	}
	if s.metrics != nil {
		s.metrics.ObserveGenAI(flow, time.Since(start).Seconds(), err)
	}
	if err != nil {
		log.Error().Err(err).
			Str("request_type", string(q.RequestType)).
			Str("detail", q.Detail).
			Msg("matchmaker failed")
		return nil, apperrors.NewUnavailable(UnavailableMessage, err)
	}

	log.Info().
		Str("request_type", string(q.RequestType)).
		Str("detail", q.Detail).
		Int("matches", len(matches)).
		Dur("latency", time.Since(start)).
		Msg("matchmaker returned candidates")

	return matches, nil
}

func (s *Service) decode(raw string) ([]model.DonorMatch, error) {
	var resp response
	if err := json.Unmarshal([]byte(stripFence(raw)), &resp); err != nil {
		return nil, fmt.Errorf("decode matchmaker response: %w", err)
	}
	if err := s.validate.Validate(resp); err != nil {
		return nil, fmt.Errorf("matchmaker response failed validation: %w", err)
	}
	matches := make([]model.DonorMatch, len(resp.Matches))
	for i, m := range resp.Matches {
		matches[i] = m.toModel()
	}
	return matches, nil
}

// stripFence removes a ```json ... ``` wrapper some models add even in JSON mode.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
