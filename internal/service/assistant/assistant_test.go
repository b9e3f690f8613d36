package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorconnect/donor-api/internal/model"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
	"github.com/donorconnect/donor-api/pkg/llm"
)

func stub(reply string, err error, seen *llm.Request) llm.Generator {
	return llm.GeneratorFunc(func(_ context.Context, req llm.Request) (string, error) {
		if seen != nil {
			*seen = req
		}
		return reply, err
	})
}

func TestChatbotReply(t *testing.T) {
	var seen llm.Request
	bot := NewChatbot(stub(`{"response":"You can donate every 56 days."}`, nil, &seen), Options{})

	resp, err := bot.Reply(context.Background(), &model.ChatRequest{Query: "  How often can I donate?  "})
	require.NoError(t, err)
	assert.Equal(t, "How often can I donate?", resp.Message)
	assert.Equal(t, "You can donate every 56 days.", resp.Response)
	assert.Contains(t, seen.Prompt, "Respond to the following query:\n\nHow often can I donate?")
	require.NotNil(t, seen.Schema)
	assert.Contains(t, seen.Schema.Properties, "response")
}

func TestChatbotEmptyQuery(t *testing.T) {
	called := false
	bot := NewChatbot(llm.GeneratorFunc(func(context.Context, llm.Request) (string, error) {
		called = true
		return "", nil
	}), Options{})

	_, err := bot.Reply(context.Background(), &model.ChatRequest{Query: "   "})
	assert.ErrorIs(t, err, apperrors.ErrKindValidation)
	assert.Equal(t, "Please enter a message.", apperrors.Message(err))
	assert.False(t, called)
}

func TestChatbotFallsBackOnFailure(t *testing.T) {
	for name, gen := range map[string]llm.Generator{
		"upstream":  stub("", errors.New("unreachable"), nil),
		"malformed": stub("not json", nil, nil),
		"empty":     stub(`{"response":""}`, nil, nil),
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := NewChatbot(gen, Options{}).Reply(context.Background(), &model.ChatRequest{Query: "Can I donate?"})
			require.NoError(t, err)
			assert.Equal(t, "Can I donate?", resp.Message)
			assert.Equal(t, ChatFallback, resp.Response)
		})
	}
}

func TestSummarizer(t *testing.T) {
	var seen llm.Request
	s := NewSummarizer(stub(`{"summary":"Wait times were long; add more staff."}`, nil, &seen), Options{})

	resp, err := s.Summarize(context.Background(), &model.FeedbackSummaryRequest{FeedbackText: "Waited 2 hours."})
	require.NoError(t, err)
	assert.Equal(t, "Wait times were long; add more staff.", resp.Summary)
	assert.Contains(t, seen.Prompt, "Feedback Text: Waited 2 hours.")

	_, err = s.Summarize(context.Background(), &model.FeedbackSummaryRequest{})
	assert.ErrorIs(t, err, apperrors.ErrKindValidation)
}

func TestSummarizerUnavailable(t *testing.T) {
	s := NewSummarizer(stub("", llm.ErrNotConfigured, nil), Options{})

	_, err := s.Summarize(context.Background(), &model.FeedbackSummaryRequest{FeedbackText: "great"})
	assert.ErrorIs(t, err, apperrors.ErrKindUnavailable)
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
	assert.Equal(t, SummarizerUnavailableText, apperrors.Message(err))
}
