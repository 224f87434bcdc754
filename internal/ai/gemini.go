package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cubeworks/cubeinsight/internal/logutil"
)

// ClientConfig holds the external model connection settings.
type ClientConfig struct {
	Credential  string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultClientConfig returns the settings used when nothing is
// configured. The credential is always supplied externally.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Model:       "gemini-2.5-flash-lite",
		BaseURL:     "https://generativelanguage.googleapis.com/v1beta/models/",
		Temperature: 0.1,
		MaxTokens:   8192,
		Timeout:     60 * time.Second,
	}
}

// fallbackModels are tried in order after the preferred model fails
// with a retryable error.
var fallbackModels = []string{"gemini-2.0-flash", "gemini-2.0-flash-lite", "gemini-1.5-flash"}

// Client calls the Gemini generateContent REST API with a model
// fallback chain. A model that answers successfully becomes the
// preferred model for subsequent calls on this client; the preference
// is instance state and never shared.
type Client struct {
	cfg  ClientConfig
	http *http.Client

	mu        sync.Mutex
	preferred string
}

func NewClient(cfg ClientConfig) *Client {
	return &Client{
		cfg:       cfg,
		http:      &http.Client{Timeout: cfg.Timeout},
		preferred: cfg.Model,
	}
}

// HasCredential reports whether the external tier can be attempted.
func (c *Client) HasCredential() bool { return c.cfg.Credential != "" }

// PreferredModel returns the model the next call will try first.
func (c *Client) PreferredModel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preferred
}

// modelChain is the preferred model followed by the fallbacks, deduped
// while preserving order.
func (c *Client) modelChain() []string {
	seen := make(map[string]bool)
	var chain []string
	for _, m := range append([]string{c.PreferredModel()}, fallbackModels...) {
		if m != "" && !seen[m] {
			seen[m] = true
			chain = append(chain, m)
		}
	}
	return chain
}

func (c *Client) rememberModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.preferred != model {
		log.Info().Str("model", model).Msg("preferred model updated")
		c.preferred = model
	}
}

// generateContent request/response wire types.

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	SystemInstruction generateContent   `json:"systemInstruction"`
	Contents          []generateContent `json:"contents"`
	GenerationConfig  generateConfig    `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// modelReply is the JSON contract the system prompt demands for the
// query pass.
type modelReply struct {
	SQL         string       `json:"sql"`
	Title       string       `json:"title"`
	Summary     string       `json:"summary"`
	ChartType   string       `json:"chartType"`
	ChartConfig *ChartConfig `json:"chartConfig"`
	Kpis        []KpiSpec    `json:"kpis"`
	QueryType   string       `json:"queryType"`
}

var fencedJSON = regexp.MustCompile("```json\\s*([\\s\\S]*?)```")

// extractJSON pulls a JSON object out of free-form model text: a
// ```json fence wins, then the outermost brace pair, then the trimmed
// text as-is.
func extractJSON(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return strings.TrimSpace(text)
}

// call performs one generateContent request against one model and
// returns the candidate text. Errors are *ModelError carrying whether
// the next model in the chain is worth trying.
func (c *Client) call(ctx context.Context, model, systemPrompt, userText string, temperature float64) (string, *ModelError) {
	reqBody := generateRequest{
		SystemInstruction: generateContent{Parts: []generatePart{{Text: systemPrompt}}},
		Contents:          []generateContent{{Role: "user", Parts: []generatePart{{Text: userText}}}},
		GenerationConfig:  generateConfig{Temperature: temperature, MaxOutputTokens: c.cfg.MaxTokens},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ModelError{Model: model, Message: "encode request: " + err.Error()}
	}

	url := c.cfg.BaseURL + model + ":generateContent?key=" + c.cfg.Credential
	log.Debug().Str("url", logutil.RedactCredential(url)).Msg("calling model endpoint")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &ModelError{Model: model, Message: "build request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ModelError{Model: model, Retryable: true, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &ModelError{Model: model, Retryable: true, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode != http.StatusOK {
		text := string(body)
		// An invalid or revoked key fails identically on every model.
		if strings.Contains(text, "API_KEY_INVALID") || strings.Contains(text, "leaked") {
			return "", &ModelError{Model: model, Status: resp.StatusCode,
				Message: "API 키가 유효하지 않습니다. 새 키를 발급받아 주세요."}
		}
		retryable := resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusTooManyRequests
		if len(text) > 100 {
			text = text[:100]
		}
		return "", &ModelError{Model: model, Status: resp.StatusCode, Retryable: retryable, Message: text}
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ModelError{Model: model, Retryable: true, Message: "decode response: " + err.Error()}
	}

	text := ""
	finishReason := ""
	if len(parsed.Candidates) > 0 {
		finishReason = parsed.Candidates[0].FinishReason
		if parts := parsed.Candidates[0].Content.Parts; len(parts) > 0 {
			text = parts[0].Text
		}
	}
	if text == "" {
		// Safety filters return 200 with no text.
		if finishReason == "" {
			finishReason = "unknown"
		}
		return "", &ModelError{Model: model, Retryable: true,
			Message: "빈 응답 (finishReason=" + finishReason + ")"}
	}
	return text, nil
}

// GenerateQuery asks the model chain to translate a question into a
// query candidate. Retryable failures advance the chain; the first
// fatal failure or exhausted chain returns the last error.
func (c *Client) GenerateQuery(ctx context.Context, question, systemPrompt string) (*Candidate, error) {
	if !c.HasCredential() {
		return nil, ErrNoCredential
	}

	chain := c.modelChain()
	var lastErr *ModelError
	for i, model := range chain {
		log.Debug().Str("model", model).Int("attempt", i+1).Int("chain", len(chain)).Msg("model attempt")
		text, callErr := c.call(ctx, model, systemPrompt, question, c.cfg.Temperature)
		if callErr != nil {
			lastErr = callErr
			if callErr.Retryable && i < len(chain)-1 {
				modelAttemptsTotal.WithLabelValues(model, "retryable").Inc()
				log.Warn().Str("model", model).Str("error", callErr.Message).Msg("model failed, trying next")
				continue
			}
			modelAttemptsTotal.WithLabelValues(model, "fatal").Inc()
			return nil, callErr
		}

		var reply modelReply
		if err := json.Unmarshal([]byte(extractJSON(text)), &reply); err != nil {
			// A model that answers in prose instead of the contract will
			// do so again; do not burn the rest of the chain on it.
			modelAttemptsTotal.WithLabelValues(model, "fatal").Inc()
			return nil, &ModelError{Model: model, Message: "응답 JSON 파싱 실패: " + err.Error()}
		}

		if err := ValidateSQL(reply.SQL); err != nil {
			modelAttemptsTotal.WithLabelValues(model, "fatal").Inc()
			return nil, &ModelError{Model: model, Unsafe: true, Message: err.Error()}
		}

		modelAttemptsTotal.WithLabelValues(model, "ok").Inc()
		c.rememberModel(model)

		queryType := QueryType(reply.QueryType)
		switch queryType {
		case QueryTypeData, QueryTypeHybrid, QueryTypeConsulting:
		default:
			queryType = QueryTypeData
		}
		return &Candidate{
			SQL:         reply.SQL,
			Title:       reply.Title,
			Summary:     reply.Summary,
			ChartType:   ChartType(reply.ChartType),
			ChartConfig: reply.ChartConfig,
			Kpis:        reply.Kpis,
			QueryType:   queryType,
			Provenance:  ProvenanceExternal,
		}, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &ModelError{Message: "API 호출 실패"}
}

// GenerateAnalysis runs the second consulting pass over executed data.
// It uses only the preferred model with a higher temperature; a failure
// here degrades the answer to data-only rather than failing it.
func (c *Client) GenerateAnalysis(ctx context.Context, dataContext string) (*Report, error) {
	if !c.HasCredential() {
		return nil, ErrNoCredential
	}

	model := c.PreferredModel()
	text, callErr := c.call(ctx, model, buildAnalysisPrompt(), dataContext, 0.4)
	if callErr != nil {
		modelAttemptsTotal.WithLabelValues(model, "fatal").Inc()
		return nil, callErr
	}

	var report Report
	if err := json.Unmarshal([]byte(extractJSON(text)), &report); err != nil {
		modelAttemptsTotal.WithLabelValues(model, "fatal").Inc()
		return nil, &ModelError{Model: model, Message: "분석 JSON 파싱 실패: " + err.Error()}
	}
	modelAttemptsTotal.WithLabelValues(model, "ok").Inc()
	return &report, nil
}
