// Package gateway is the single point of contact with the external SMS
// transport. It never retries; recoverability lives with the caller.
package gateway

import (
	"context"

	"go.uber.org/zap"
)

// Gateway sends one message to one phone number. A nil return means the
// transport accepted the message; any error is a delivery failure.
type Gateway interface {
	Name() string
	Send(ctx context.Context, phone, text string) error
}

// LogGateway is the dev/no-credentials fallback: it logs the message instead
// of sending it and always reports success.
type LogGateway struct {
	log *zap.Logger
}

func NewLogGateway(log *zap.Logger) *LogGateway {
	return &LogGateway{log: log}
}

func (g *LogGateway) Name() string { return "log" }

func (g *LogGateway) Send(_ context.Context, phone, text string) error {
	g.log.Info("sms (log gateway, not delivered)",
		zap.String("phone", phone),
		zap.String("text", text),
	)
	return nil
}
