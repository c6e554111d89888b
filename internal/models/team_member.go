package models

import (
	"time"

	"github.com/google/uuid"
)

type TeamMember struct {
	ID           uuid.UUID `json:"id" db:"id"`
	WorkflowName string    `json:"workflow_name" db:"workflow_name"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	Role         string    `json:"role" db:"role"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
