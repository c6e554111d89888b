package models

import (
	"time"

	"github.com/google/uuid"
)

// Integration is a third-party service hookup owned by a tenant. Config holds
// provider-specific settings and is stored as JSONB.
type Integration struct {
	ID           uuid.UUID         `json:"id" db:"id"`
	WorkflowName string            `json:"workflow_name" db:"workflow_name"`
	Provider     string            `json:"provider" db:"provider"`
	Config       map[string]string `json:"config" db:"config"`
	Enabled      bool              `json:"enabled" db:"enabled"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}
