package model

type ChatRequest struct {
	Query string `json:"query"`
}

type ChatResponse struct {
	Message  string `json:"message"`
	Response string `json:"response"`
}

type FeedbackSummaryRequest struct {
	FeedbackText string `json:"feedbackText"`
}

type FeedbackSummaryResponse struct {
	Summary string `json:"summary"`
}
