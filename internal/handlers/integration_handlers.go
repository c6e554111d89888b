package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/mfk4us/bocc-client-panel/internal/common"
	"github.com/mfk4us/bocc-client-panel/internal/models"
	"github.com/mfk4us/bocc-client-panel/internal/repositories"
)

type IntegrationHandlers struct {
	integrationRepo repositories.IntegrationRepository
}

func NewIntegrationHandlers(integrationRepo repositories.IntegrationRepository) *IntegrationHandlers {
	return &IntegrationHandlers{integrationRepo: integrationRepo}
}

type CreateIntegrationRequest struct {
	Provider string            `json:"provider"`
	Config   map[string]string `json:"config"`
	Enabled  bool              `json:"enabled"`
}

type UpdateIntegrationRequest struct {
	Config  map[string]string `json:"config"`
	Enabled *bool             `json:"enabled"`
}

// ListIntegrations handles GET /integrations
func (h *IntegrationHandlers) ListIntegrations(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	integrations, err := h.integrationRepo.List(ctx, workflow)
	if err != nil {
		log.Printf("integration list failed for workflow %s: %v", workflow, err)
		return common.SendServerError(c, "Failed to list integrations")
	}
	if integrations == nil {
		integrations = []*models.Integration{}
	}

	return c.JSON(http.StatusOK, map[string]any{"integrations": integrations})
}

// CreateIntegration handles POST /integrations
func (h *IntegrationHandlers) CreateIntegration(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateIntegrationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Provider == "" {
		return common.SendValidationError(c, "provider", "provider is required")
	}
	if req.Config == nil {
		req.Config = map[string]string{}
	}

	integration := &models.Integration{
		ID:           uuid.New(),
		WorkflowName: workflow,
		Provider:     req.Provider,
		Config:       req.Config,
		Enabled:      req.Enabled,
	}
	if err := h.integrationRepo.Create(ctx, integration); err != nil {
		log.Printf("integration create failed: %v", err)
		return common.SendServerError(c, "Failed to create integration")
	}

	created, err := h.integrationRepo.GetByID(ctx, integration.ID)
	if err != nil {
		log.Printf("integration reload failed: %v", err)
		return common.SendServerError(c, "Failed to load integration")
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateIntegration handles PUT /integrations/:id
func (h *IntegrationHandlers) UpdateIntegration(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateIntegrationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	integration, err := h.integrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Integration")
		}
		log.Printf("integration lookup failed: %v", err)
		return common.SendServerError(c, "Failed to load integration")
	}
	if integration.WorkflowName != workflow {
		return common.SendNotFoundError(c, "Integration")
	}

	if req.Config != nil {
		integration.Config = req.Config
	}
	if req.Enabled != nil {
		integration.Enabled = *req.Enabled
	}

	if err := h.integrationRepo.Update(ctx, integration); err != nil {
		log.Printf("integration update failed: %v", err)
		return common.SendServerError(c, "Failed to update integration")
	}

	updated, err := h.integrationRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("integration reload failed: %v", err)
		return common.SendServerError(c, "Failed to load integration")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteIntegration handles DELETE /integrations/:id
func (h *IntegrationHandlers) DeleteIntegration(c echo.Context) error {
	ctx := c.Request().Context()

	workflow, ok := resolveWorkflow(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	integration, err := h.integrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Integration")
		}
		log.Printf("integration lookup failed: %v", err)
		return common.SendServerError(c, "Failed to load integration")
	}
	if integration.WorkflowName != workflow {
		return common.SendNotFoundError(c, "Integration")
	}

	if err := h.integrationRepo.Delete(ctx, id); err != nil {
		log.Printf("integration delete failed: %v", err)
		return common.SendServerError(c, "Failed to delete integration")
	}

	return c.NoContent(http.StatusNoContent)
}
