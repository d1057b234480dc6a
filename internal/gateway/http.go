package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type sendPayload struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
}

// HTTPGateway posts messages to a provider endpoint. A micro circuit breaker
// sheds load while the provider is down; a rejected acquire surfaces as a
// plain send error, not a retry.
type HTTPGateway struct {
	name   string
	url    string
	apiKey string
	client *http.Client
	br     *MicroBreaker
}

func NewHTTPGateway(name, url, apiKey string, timeoutMs, failThreshold, openForMs int) *HTTPGateway {
	if timeoutMs <= 0 {
		timeoutMs = 3000
	}

	if failThreshold <= 0 {
		failThreshold = 3
	}

	if openForMs <= 0 {
		openForMs = 15000
	}

	return &HTTPGateway{
		name:   name,
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond},
		br:     NewMicroBreaker(failThreshold, time.Duration(openForMs)*time.Millisecond),
	}
}

func (g *HTTPGateway) Name() string { return g.name }

func (g *HTTPGateway) Send(ctx context.Context, phone, text string) error {
	if !g.br.TryAcquire() {
		return fmt.Errorf("gateway=%s circuit open", g.name)
	}

	if err := g.post(ctx, phone, text); err != nil {
		g.br.OnFailure()
		return err
	}

	g.br.OnSuccess()

	return nil
}

func (g *HTTPGateway) post(ctx context.Context, phone, text string) error {
	b, _ := json.Marshal(sendPayload{Phone: phone, Text: text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(b))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	res, err := g.client.Do(req)
	if err != nil {
		return err
	}

	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		return fmt.Errorf("gateway=%s status=%d", g.name, res.StatusCode)
	}

	return nil
}
