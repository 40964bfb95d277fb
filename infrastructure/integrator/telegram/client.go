package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/promowebkz/deal-report-api/internal/config"
	"github.com/promowebkz/deal-report-api/pkg/utils"
)

// Sender delivers report messages through the Telegram Bot API.
type Sender interface {
	SendMessage(chatID int64, text string) error
	// ResolveChatID discovers the chat ID from the latest bot update
	// when none is configured.
	ResolveChatID() (int64, error)
}

type client struct {
	cfg        config.Telegram
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.Telegram) Sender {
	return &client{
		cfg:        cfg,
		baseURL:    fmt.Sprintf("https://api.telegram.org/bot%s", cfg.BotToken),
		httpClient: &http.Client{},
	}
}

type apiResponse struct {
	Ok          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type update struct {
	Message *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

func (c *client) SendMessage(chatID int64, text string) error {
	if c.cfg.BotToken == "" || chatID == 0 {
		logrus.WithField("chat_id", chatID).Warn("Telegram delivery skipped: token or chat ID not configured")
		return nil
	}

	body := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encoding the sendMessage payload")
	}

	resp, err := c.httpClient.Post(c.baseURL+"/sendMessage", "application/json", bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "calling sendMessage")
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var api apiResponse
	_ = json.Unmarshal(respBody, &api)

	if resp.StatusCode != http.StatusOK || !api.Ok {
		return errors.Errorf("sendMessage failed: status=%d ok=%v desc=%s", resp.StatusCode, api.Ok, api.Description)
	}

	logrus.WithField("chat_id", chatID).Info("Report delivered to Telegram")
	return nil
}

func (c *client) ResolveChatID() (int64, error) {
	if c.cfg.ChatID != 0 {
		return c.cfg.ChatID, nil
	}

	data, err := utils.MakeRequest(c.baseURL + "/getUpdates")
	if err != nil {
		return 0, errors.Wrap(err, "calling getUpdates")
	}

	var api apiResponse
	if err := json.Unmarshal(data, &api); err != nil {
		return 0, errors.Wrap(err, "decoding getUpdates")
	}
	if !api.Ok {
		return 0, errors.Errorf("getUpdates failed: %s", api.Description)
	}

	var updates []update
	if err := json.Unmarshal(api.Result, &updates); err != nil {
		return 0, errors.Wrap(err, "decoding updates")
	}

	for i := len(updates) - 1; i >= 0; i-- {
		if updates[i].Message != nil {
			return updates[i].Message.Chat.ID, nil
		}
	}

	return 0, errors.New("no chat updates found")
}
