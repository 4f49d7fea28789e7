package ai

import "context"

// Generator turns a prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// --- Request types for the Gemini REST API ---

type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

// NewGenerateRequest wraps the prompt in a single content part.
func NewGenerateRequest(prompt string) GenerateRequest {
	return GenerateRequest{
		Contents: []Content{{
			Parts: []Part{{Text: prompt}},
		}},
	}
}

// --- Response types ---

// Every level is optional so absent segments can be told apart from
// empty ones.
type GenerateResponse struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *UsageMetadata  `json:"usageMetadata,omitempty"`
}

type Candidate struct {
	Content      *CandidateContent `json:"content"`
	FinishReason string            `json:"finishReason,omitempty"`
}

type CandidateContent struct {
	Parts []CandidatePart `json:"parts"`
}

type CandidatePart struct {
	Text *string `json:"text"`
}

type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

type UsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// Text walks candidates[0].content.parts[0].text and reports the first
// missing segment.
func (r GenerateResponse) Text() (string, error) {
	if len(r.Candidates) == 0 {
		err := &MissingFieldError{Field: "candidates"}
		if r.PromptFeedback != nil {
			err.BlockReason = r.PromptFeedback.BlockReason
		}
		return "", err
	}

	content := r.Candidates[0].Content
	if content == nil {
		return "", &MissingFieldError{Field: "candidates[0].content", FinishReason: r.Candidates[0].FinishReason}
	}
	if len(content.Parts) == 0 {
		return "", &MissingFieldError{Field: "candidates[0].content.parts", FinishReason: r.Candidates[0].FinishReason}
	}

	text := content.Parts[0].Text
	if text == nil || *text == "" {
		return "", &MissingFieldError{Field: "candidates[0].content.parts[0].text", FinishReason: r.Candidates[0].FinishReason}
	}

	return *text, nil
}

// ErrorResponse is the body Gemini returns with a non-2xx status.
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
