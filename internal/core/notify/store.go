package notify

import (
	"context"
	"time"
)

// Category classifies a notification. It selects the banner accent, the
// auto-hide policy and the action set offered by the heads-up banner.
type Category string

const (
	CategoryCall     Category = "call"
	CategoryMessage  Category = "message"
	CategoryReminder Category = "reminder"
	CategoryGeneral  Category = "general"
)

// Categories lists every known category in display order.
var Categories = []Category{CategoryCall, CategoryMessage, CategoryReminder, CategoryGeneral}

// ParseCategory maps a raw category string to a Category. Unknown and empty
// values fall back to CategoryGeneral.
func ParseCategory(s string) Category {
	switch c := Category(s); c {
	case CategoryCall, CategoryMessage, CategoryReminder, CategoryGeneral:
		return c
	default:
		return CategoryGeneral
	}
}

// Draft is the caller-supplied part of a notification.
type Draft struct {
	Title    string
	Body     string
	Category Category
	Payload  map[string]any
}

// Record is a notification held by the Store.
type Record struct {
	ID        string
	Title     string
	Body      string
	Category  Category
	CreatedAt time.Time
	Read      bool
	Payload   map[string]any // routing hints, not interpreted by the store
}

// PayloadString returns the string value stored under key, or "".
func (r Record) PayloadString(key string) string {
	if r.Payload == nil {
		return ""
	}
	s, _ := r.Payload[key].(string)
	return s
}

// BadgeSink receives the unread count after every mutation that changes it.
type BadgeSink interface {
	SetBadgeCount(ctx context.Context, n int) error
}
