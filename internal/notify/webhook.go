// Package notify posts concluded match results to an outside webhook.
package notify

import (
	"context"
	"cricket-sim/internal/config"
	"cricket-sim/internal/constants"
	"cricket-sim/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

var ErrDisabled = errors.New("result webhook not configured")

type ResultPayload struct {
	MatchID    string             `json:"match_id"`
	SeriesID   string             `json:"series_id,omitempty"`
	TestNumber int                `json:"test_number,omitempty"`
	TeamOne    string             `json:"team_one"`
	TeamTwo    string             `json:"team_two"`
	Result     domain.MatchResult `json:"result"`
	Text       string             `json:"text"`
	Scores     []string           `json:"scores"`
	SentAt     time.Time          `json:"sent_at"`
}

func NewResultPayload(rec *domain.MatchRecord) ResultPayload {
	scores := make([]string, len(rec.Innings))
	for i, sum := range rec.Innings {
		scores[i] = fmt.Sprintf("%s %s (%s ov)", sum.Team, sum.Score(), sum.Overs())
	}
	return ResultPayload{
		MatchID:    rec.ID,
		SeriesID:   rec.SeriesID,
		TestNumber: rec.TestNumber,
		TeamOne:    rec.TeamOne,
		TeamTwo:    rec.TeamTwo,
		Result:     rec.Result,
		Text:       rec.Result.Text(),
		Scores:     scores,
		SentAt:     time.Now().UTC(),
	}
}

type WebhookClient struct {
	url    string
	client *fasthttp.Client
	logger zerolog.Logger

	statsMu sync.RWMutex
	stats   DeliveryStats
}

type DeliveryStats struct {
	Delivered  int       `json:"delivered"`
	Failed     int       `json:"failed"`
	LastStatus int       `json:"last_status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewWebhookClient(cfg *config.Config, logger zerolog.Logger) *WebhookClient {
	return &WebhookClient{
		url: cfg.ResultWebhookURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.WebhookTimeout,
			WriteTimeout:        constants.WebhookTimeout,
			MaxIdleConnDuration: time.Minute,
		},
		logger: logger,
	}
}

func (c *WebhookClient) Enabled() bool {
	return c.url != ""
}

func (c *WebhookClient) Stats() DeliveryStats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return c.stats
}

func (c *WebhookClient) record(status int, ok bool) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()

	if ok {
		c.stats.Delivered++
	} else {
		c.stats.Failed++
	}
	c.stats.LastStatus = status
	c.stats.UpdatedAt = time.Now()
}

// Send posts the result. It returns ErrDisabled when no URL is configured.
func (c *WebhookClient) Send(ctx context.Context, payload ResultPayload) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode result payload: %w", err)
	}

	status, err := post(ctx, c.client, c.url, body)
	c.record(status, err == nil)
	if err != nil {
		c.logger.Warn().Err(err).Str("match_id", payload.MatchID).Msg("result webhook failed")
		return err
	}

	c.logger.Debug().
		Str("match_id", payload.MatchID).
		Int("status", status).
		Msg("result webhook delivered")
	return nil
}

func post(ctx context.Context, client *fasthttp.Client, url string, body []byte) (int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.WebhookTimeout)
	}
	if err := client.DoDeadline(req, resp, deadline); err != nil {
		return 0, fmt.Errorf("failed to post result: %w", err)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		return status, fmt.Errorf("webhook error: %d", status)
	}
	return status, nil
}
