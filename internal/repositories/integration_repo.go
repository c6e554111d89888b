package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mfk4us/bocc-client-panel/internal/models"
)

type IntegrationRepository interface {
	Create(ctx context.Context, integration *models.Integration) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Integration, error)
	Update(ctx context.Context, integration *models.Integration) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, workflowName string) ([]*models.Integration, error)
}

type integrationRepo struct {
	db DB
}

func NewIntegrationRepo(db DB) IntegrationRepository {
	return &integrationRepo{db: db}
}

func (r *integrationRepo) Create(ctx context.Context, integration *models.Integration) error {
	configJSON, err := json.Marshal(integration.Config)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO integrations (id, workflow_name, provider, config, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, integration.ID, integration.WorkflowName, integration.Provider, configJSON, integration.Enabled)
	return err
}

func (r *integrationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Integration, error) {
	integration := &models.Integration{}
	var configJSON []byte
	query := `
		SELECT id, workflow_name, provider, config, enabled, created_at, updated_at
		FROM integrations
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&integration.ID, &integration.WorkflowName,
		&integration.Provider, &configJSON, &integration.Enabled, &integration.CreatedAt, &integration.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(configJSON) > 0 {
		if err := json.Unmarshal(configJSON, &integration.Config); err != nil {
			return nil, err
		}
	}
	return integration, nil
}

func (r *integrationRepo) Update(ctx context.Context, integration *models.Integration) error {
	configJSON, err := json.Marshal(integration.Config)
	if err != nil {
		return err
	}
	query := `
		UPDATE integrations
		SET provider = $1, config = $2, enabled = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err = r.db.Exec(ctx, query, integration.Provider, configJSON, integration.Enabled, integration.ID)
	return err
}

func (r *integrationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM integrations WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *integrationRepo) List(ctx context.Context, workflowName string) ([]*models.Integration, error) {
	query := `
		SELECT id, workflow_name, provider, config, enabled, created_at, updated_at
		FROM integrations
		WHERE workflow_name = $1
		ORDER BY provider ASC
	`
	rows, err := r.db.Query(ctx, query, workflowName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var integrations []*models.Integration
	for rows.Next() {
		integration := &models.Integration{}
		var configJSON []byte
		if err := rows.Scan(&integration.ID, &integration.WorkflowName, &integration.Provider,
			&configJSON, &integration.Enabled, &integration.CreatedAt, &integration.UpdatedAt); err != nil {
			return nil, err
		}
		if len(configJSON) > 0 {
			if err := json.Unmarshal(configJSON, &integration.Config); err != nil {
				return nil, err
			}
		}
		integrations = append(integrations, integration)
	}
	return integrations, rows.Err()
}
