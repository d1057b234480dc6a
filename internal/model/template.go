package model

import (
	"strings"
	"time"
)

type TemplateCategory string

const (
	CategoryGeneral     TemplateCategory = "general"
	CategoryPayment     TemplateCategory = "payment"
	CategoryLease       TemplateCategory = "lease"
	CategoryMaintenance TemplateCategory = "maintenance"
	CategoryReceipt     TemplateCategory = "receipt"
	CategoryReminder    TemplateCategory = "reminder"
)

func (c TemplateCategory) String() string { return string(c) }

func (c TemplateCategory) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryPayment, CategoryLease, CategoryMaintenance, CategoryReceipt, CategoryReminder:
		return true
	default:
		return false
	}
}

// ParseCategory normalizes input; empty => general.
// Returns (value, true) if valid; otherwise (general, false).
func ParseCategory(s string) (TemplateCategory, bool) {
	c := TemplateCategory(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return CategoryGeneral, true
	}
	if c.Valid() {
		return c, true
	}
	return CategoryGeneral, false
}

// Template is the DB entity persisted in the templates table.
// Variant is an opaque presentation tag (e.g. friendly|formal); nothing
// in the dispatch path branches on it.
type Template struct {
	ID        string           `db:"id" json:"id"`
	Name      string           `db:"name" json:"name"`
	Category  TemplateCategory `db:"category" json:"category"`
	Variant   string           `db:"variant" json:"variant"`
	Body      string           `db:"body" json:"body"`
	Active    bool             `db:"active" json:"active"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}
