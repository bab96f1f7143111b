package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultInferenceTimeout = 10 * time.Second
	// maxInputChars bounds the payload sent per inference call.
	maxInputChars = 512
)

// InferenceClient implements RemoteClient against a hosted inference
// endpoint. Each call is one HTTP request with a bounded timeout; every
// failure mode maps to ErrUnavailable.
type InferenceClient struct {
	baseURL        string
	apiKey         string
	summaryModel   string
	sentimentModel string
	httpClient     *http.Client
}

// NewInferenceClient constructs an InferenceClient.
func NewInferenceClient(baseURL, apiKey, summaryModel, sentimentModel string) (*InferenceClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("inference base URL is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("INFERENCE_API_KEY is required")
	}
	timeout := defaultInferenceTimeout
	if raw := strings.TrimSpace(os.Getenv("INFERENCE_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &InferenceClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		apiKey:         apiKey,
		summaryModel:   summaryModel,
		sentimentModel: sentimentModel,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type summaryOutput struct {
	SummaryText   string `json:"summary_text"`
	GeneratedText string `json:"generated_text"`
}

type sentimentScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Summarize asks the summarization model for a summary of text.
func (c *InferenceClient) Summarize(ctx context.Context, text string) (string, error) {
	body, err := c.post(ctx, c.summaryModel, text)
	if err != nil {
		return "", err
	}

	summary := parseSummaryBody(body)
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary in response", ErrUnavailable)
	}
	return summary, nil
}

// ClassifySentiment asks the sentiment model for a label for text.
func (c *InferenceClient) ClassifySentiment(ctx context.Context, text string) (Sentiment, error) {
	body, err := c.post(ctx, c.sentimentModel, text)
	if err != nil {
		return "", err
	}

	scores := parseSentimentBody(body)
	if len(scores) == 0 {
		return "", fmt.Errorf("%w: no sentiment scores in response", ErrUnavailable)
	}

	top := scores[0]
	for _, s := range scores[1:] {
		if s.Score > top.Score {
			top = s
		}
	}
	return mapSentimentLabel(top.Label), nil
}

// post issues a single inference request. Non-2xx statuses, transport
// errors, and timeouts all come back as ErrUnavailable; no retries.
func (c *InferenceClient) post(ctx context.Context, model, text string) ([]byte, error) {
	payload, err := json.Marshal(inferenceRequest{Inputs: truncate(text, maxInputChars)})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrUnavailable, err)
	}

	url := c.baseURL + "/models/" + model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	// 404/410 show up when a hosted model is retired; they are the same
	// "unavailable" outcome as 5xx or a loading 503.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d from %s", ErrUnavailable, resp.StatusCode, model)
	}
	return body, nil
}

// parseSummaryBody tolerates the response shapes the hosted endpoint has
// produced over time: a list of objects, a single object, or a bare
// string.
func parseSummaryBody(body []byte) string {
	var list []summaryOutput
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return firstNonEmpty(list[0].SummaryText, list[0].GeneratedText)
	}

	var single summaryOutput
	if err := json.Unmarshal(body, &single); err == nil {
		if s := firstNonEmpty(single.SummaryText, single.GeneratedText); s != "" {
			return s
		}
	}

	var raw string
	if err := json.Unmarshal(body, &raw); err == nil {
		return strings.TrimSpace(raw)
	}
	return ""
}

// parseSentimentBody accepts either [[{label,score}...]] or
// [{label,score}...].
func parseSentimentBody(body []byte) []sentimentScore {
	var nested [][]sentimentScore
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 {
		return nested[0]
	}

	var flat []sentimentScore
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat
	}
	return nil
}

func mapSentimentLabel(label string) Sentiment {
	upper := strings.ToUpper(strings.TrimSpace(label))
	switch {
	case strings.Contains(upper, "POSITIVE"), strings.Contains(upper, "POS"), upper == "LABEL_2":
		return SentimentPositive
	case strings.Contains(upper, "NEGATIVE"), strings.Contains(upper, "NEG"), upper == "LABEL_0":
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

var _ RemoteClient = (*InferenceClient)(nil)
