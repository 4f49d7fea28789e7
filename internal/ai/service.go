package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// GeminiService implements Generator against the Gemini generateContent
// REST endpoint.
type GeminiService struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// NewGeminiService builds the endpoint
// {baseURL}/{version}/models/{model}:generateContent.
// A nil httpClient uses a client without a timeout.
func NewGeminiService(httpClient *http.Client, baseURL, version, model, apiKey string) *GeminiService {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &GeminiService{
		httpClient: httpClient,
		endpoint:   fmt.Sprintf("%s/%s/models/%s:generateContent", strings.TrimRight(baseURL, "/"), version, model),
		apiKey:     apiKey,
	}
}

// Generate implements the Generator interface. It issues exactly one
// request; there are no retries.
func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	jsonData, err := json.Marshal(NewGenerateRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	reqURL := s.endpoint + "?" + url.Values{"key": {s.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", redactKey(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newAPIError(resp.StatusCode, body)
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return genResp.Text()
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		apiErr.Message = errResp.Error.Message
		apiErr.Status = errResp.Error.Status
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	return apiErr
}

// redactKey strips the request URL from transport errors, it carries the
// API key in its query.
func redactKey(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
