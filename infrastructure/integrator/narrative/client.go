package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/promowebkz/deal-report-api/internal/config"
	"github.com/promowebkz/deal-report-api/internal/domain"
	"github.com/promowebkz/deal-report-api/pkg/utils"
)

// How "best/worst employee" ties are broken is up to the model; the
// calculators only supply the sums the ranking must reconcile against.
const systemPrompt = "You are a marketing specialist assistant. Answer always short and only in Russian language"

// Narrator turns structured aggregates into narrative report text and
// answers ad-hoc questions over the cumulative history.
type Narrator interface {
	GenerateDailyReport(ctx context.Context, summary *domain.DailySummary) (string, error)
	AnswerQuestion(ctx context.Context, question string, history map[string][]any) (string, error)
}

type client struct {
	cfg        config.OpenAI
	httpClient *http.Client
}

func NewClient(cfg config.OpenAI) Narrator {
	return &client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *client) GenerateDailyReport(ctx context.Context, summary *domain.DailySummary) (string, error) {
	prompt := fmt.Sprintf(
		"Analyze the following daily sales summary and provide insights, including the best and worst performing employee:\n%s",
		utils.PrettyJson(summary),
	)

	return c.complete(ctx, prompt)
}

func (c *client) AnswerQuestion(ctx context.Context, question string, history map[string][]any) (string, error) {
	prompt := fmt.Sprintf(
		"Using the following per-day metric history, answer the question.\nHistory:\n%s\nQuestion: %s",
		utils.PrettyJson(history),
		question,
	)

	return c.complete(ctx, prompt)
}

func (c *client) complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", errors.New("narrative service is not configured")
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding the completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "building the completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling the narrative service")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading the completion response")
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", errors.Wrap(err, "decoding the completion response")
	}

	if completion.Error != nil {
		return "", errors.Errorf("narrative service error: %s", completion.Error.Message)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("narrative service returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
