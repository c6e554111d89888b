package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mfk4us/bocc-client-panel/internal/common"
	"github.com/mfk4us/bocc-client-panel/internal/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// resolveWorkflow decides which tenant workflow a collection request operates
// on. Admins may target any workflow via the workflow_name query parameter;
// tenants are pinned to the workflow baked into their token.
func resolveWorkflow(c echo.Context) (string, bool) {
	ctx := c.Request().Context()

	role, ok := common.GetRoleFromContext(ctx)
	if !ok {
		return "", false
	}

	if role == models.RoleAdmin {
		if requested := c.QueryParam("workflow_name"); requested != "" {
			return requested, true
		}
	}

	workflow, ok := common.GetWorkflowFromContext(ctx)
	if !ok || workflow == "" {
		return "", false
	}
	return workflow, true
}

// parseListRange reads limit/offset query parameters with sane bounds.
func parseListRange(c echo.Context) (limit, offset int) {
	limit = defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
