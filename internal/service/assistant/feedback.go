package assistant

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/donorconnect/donor-api/internal/model"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
	"github.com/donorconnect/donor-api/pkg/llm"
)

const (
	EmptyFeedbackMessage      = "Feedback text is required."
	SummarizerUnavailableText = "The AI summarizer is currently unavailable. Please try again later."
)

type Summarizer struct {
	gen  llm.Generator
	opts Options
}

func NewSummarizer(gen llm.Generator, opts Options) *Summarizer {
	return &Summarizer{gen: gen, opts: opts}
}

func FeedbackPrompt(feedback string) string {
	return "You are an expert in analyzing feedback and providing concise summaries.\n\n" +
		"Please summarize the following feedback from a blood drive, highlighting key areas for improvement:\n\n" +
		"Feedback Text: " + feedback + "\n\n" +
		"Summary:\n"
}

func (s *Summarizer) Summarize(ctx context.Context, req *model.FeedbackSummaryRequest) (*model.FeedbackSummaryResponse, error) {
	text := strings.TrimSpace(req.FeedbackText)
	if text == "" {
		return nil, apperrors.NewValidation(EmptyFeedbackMessage, nil)
	}

	summary, err := generateField(ctx, s.gen, s.opts, "feedback", FeedbackPrompt(text),
		"summary", "A concise summary of the feedback, highlighting key areas for improvement.")
	if err != nil {
		log.Error().Err(err).Int("feedback_chars", len(text)).Msg("feedback summary failed")
		return nil, apperrors.NewUnavailable(SummarizerUnavailableText, err)
	}

	return &model.FeedbackSummaryResponse{Summary: summary}, nil
}
