package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-form annotation a tenant keeps against one of their customers,
// keyed by the customer's phone number within the tenant's workflow.
type Note struct {
	ID            uuid.UUID `json:"id" db:"id"`
	WorkflowName  string    `json:"workflow_name" db:"workflow_name"`
	CustomerPhone string    `json:"customer_phone" db:"customer_phone"`
	Author        string    `json:"author" db:"author"`
	Content       string    `json:"content" db:"content"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
