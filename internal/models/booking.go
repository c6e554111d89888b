package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID           uuid.UUID `json:"id" db:"id"`
	WorkflowName string    `json:"workflow_name" db:"workflow_name"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	PhoneNumber  string    `json:"phone_number" db:"phone_number"`
	Service      string    `json:"service" db:"service"`
	ScheduledAt  time.Time `json:"scheduled_at" db:"scheduled_at"`
	Status       string    `json:"status" db:"status"`
	Notes        string    `json:"notes" db:"notes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
