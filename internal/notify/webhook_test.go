package notify

import (
	"context"
	"cricket-sim/internal/config"
	"cricket-sim/internal/domain"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func testRecord() *domain.MatchRecord {
	return &domain.MatchRecord{
		ID:      "m1",
		TeamOne: "Australia",
		TeamTwo: "England",
		Result:  domain.MatchResult{Kind: domain.ResultWin, WinnerName: "England", Margin: "6 wickets"},
		Innings: []*domain.InningsSummary{
			{Number: 1, Team: "Australia", Runs: 120, Wickets: 10, Balls: 200},
		},
	}
}

func TestSendPostsJSON(t *testing.T) {
	var got ResultPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewWebhookClient(&config.Config{ResultWebhookURL: srv.URL}, zerolog.Nop())
	if err := c.Send(context.Background(), NewResultPayload(testRecord())); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if got.MatchID != "m1" || got.Text != "England win by 6 wickets" {
		t.Fatalf("payload = %+v", got)
	}
	if len(got.Scores) != 1 || got.Scores[0] != "Australia 120 all out (33.2 ov)" {
		t.Fatalf("scores = %v", got.Scores)
	}
	if s := c.Stats(); s.Delivered != 1 || s.LastStatus != http.StatusNoContent {
		t.Fatalf("stats = %+v", s)
	}
}

func TestSendReportsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewWebhookClient(&config.Config{ResultWebhookURL: srv.URL}, zerolog.Nop())
	if err := c.Send(context.Background(), NewResultPayload(testRecord())); err == nil {
		t.Fatal("expected an error for a 502")
	}
	if s := c.Stats(); s.Failed != 1 || s.LastStatus != http.StatusBadGateway {
		t.Fatalf("stats = %+v", s)
	}
}

func TestSendDisabled(t *testing.T) {
	c := NewWebhookClient(&config.Config{}, zerolog.Nop())
	if c.Enabled() {
		t.Fatal("client without a URL should be disabled")
	}
	if err := c.Send(context.Background(), ResultPayload{}); !errors.Is(err, ErrDisabled) {
		t.Fatalf("error = %v", err)
	}
}
