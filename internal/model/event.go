package model

import "time"

// DispatchEvent is the payload published to Kafka after a log append.
type DispatchEvent struct {
	ID     string         `json:"id"` // log entry ULID
	Phone  string         `json:"phone"`
	Status DispatchStatus `json:"status"`
	Source DispatchSource `json:"source"`
	SentAt time.Time      `json:"sent_at"`
}
