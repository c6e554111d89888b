package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChannelWhatsApp = "whatsapp"
	ChannelSMS      = "sms"
	ChannelEmail    = "email"

	MessageStatusQueued = "queued"
	MessageStatusSent   = "sent"
	MessageStatusFailed = "failed"
)

// Message is one campaign send record. Delivery itself happens at the
// messaging provider; this row only tracks what was handed over.
type Message struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	WorkflowName string     `json:"workflow_name" db:"workflow_name"`
	Channel      string     `json:"channel" db:"channel"`
	Recipient    string     `json:"recipient" db:"recipient"`
	TemplateName string     `json:"template_name" db:"template_name"`
	Body         string     `json:"body" db:"body"`
	Status       string     `json:"status" db:"status"`
	SentAt       *time.Time `json:"sent_at,omitempty" db:"sent_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
