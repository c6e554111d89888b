package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin  = "admin"
	RoleTenant = "tenant"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Profile is one tenant row of the managed list. WorkflowName is the scoping
// key that partitions all tenant-owned data (messages, bookings, settings).
type Profile struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         string    `json:"role" db:"role"`
	WorkflowName string    `json:"workflow_name" db:"workflow_name"`
	PhoneNumber  string    `json:"phone_number" db:"phone_number"`
	BusinessName string    `json:"business_name" db:"business_name"`
	CustomerName string    `json:"customer_name" db:"customer_name"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
