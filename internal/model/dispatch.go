package model

import (
	"strings"
	"time"
)

type DispatchStatus string

const (
	StatusSent   DispatchStatus = "sent"
	StatusFailed DispatchStatus = "failed"
)

func (s DispatchStatus) String() string {
	return string(s)
}

func (s DispatchStatus) Valid() bool {
	return s == StatusSent || s == StatusFailed
}

// DispatchSource tags how a log entry came to exist.
type DispatchSource string

const (
	SourceManual   DispatchSource = "manual"
	SourceTemplate DispatchSource = "template"
	SourceResend   DispatchSource = "resend"
	SourceReceipt  DispatchSource = "receipt"
	SourceReminder DispatchSource = "reminder"
)

func (s DispatchSource) String() string { return string(s) }

// StatusFilter is the read-side predicate for listing log entries.
type StatusFilter string

const (
	FilterAll    StatusFilter = "all"
	FilterSent   StatusFilter = "sent"
	FilterFailed StatusFilter = "failed"
)

// ParseStatusFilter normalizes input; empty => all.
// Returns (value, true) if valid; otherwise (all, false).
func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, true
	case "sent":
		return FilterSent, true
	case "failed":
		return FilterFailed, true
	default:
		return FilterAll, false
	}
}

// DispatchLog is one send attempt persisted in sms_logs. Message holds the
// fully rendered text; the row never points back at a template, so deleting
// a template cannot invalidate history.
type DispatchLog struct {
	ID             string         `db:"id" json:"id"`
	RecipientName  string         `db:"recipient_name" json:"recipient_name"`
	RecipientPhone string         `db:"recipient_phone" json:"recipient_phone"`
	Message        string         `db:"message" json:"message"`
	Source         DispatchSource `db:"source" json:"source"`
	Status         DispatchStatus `db:"status" json:"status"`
	SentAt         time.Time      `db:"sent_at" json:"sent_at"`

	// Error carries the transport reason for failed attempts. It is
	// returned to callers but never persisted.
	Error string `db:"-" json:"error,omitempty"`
}
