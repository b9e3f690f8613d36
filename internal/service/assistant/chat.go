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
	EmptyQueryMessage = "Please enter a message."
	ChatFallback      = "Sorry, I'm having trouble connecting to my brain right now. Please try again later."
)

type Chatbot struct {
	gen  llm.Generator
	opts Options
}

func NewChatbot(gen llm.Generator, opts Options) *Chatbot {
	return &Chatbot{gen: gen, opts: opts}
}

func ChatPrompt(query string) string {
	return "You are a chatbot designed to answer questions from blood donors.\n\n" +
		"Provide helpful and accurate information about the blood donation process, eligibility requirements, and related topics.\n\n" +
		"Respond to the following query:\n\n" +
		query
}

// Reply answers a donor question. Only an empty query is an error; when the
// generative service fails the donor gets the fallback reply instead.
func (c *Chatbot) Reply(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, apperrors.NewValidation(EmptyQueryMessage, nil)
	}

	answer, err := generateField(ctx, c.gen, c.opts, "chatbot", ChatPrompt(query),
		"response", "The chatbot response to the donor query.")
	if err != nil {
		log.Error().Err(err).Msg("chatbot reply failed")
		answer = ChatFallback
	}

	return &model.ChatResponse{Message: query, Response: answer}, nil
}
