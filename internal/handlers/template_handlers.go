package handlers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mfk4us/bocc-client-panel/internal/common"
	"github.com/mfk4us/bocc-client-panel/internal/services"
)

// TemplateHandlers serves the message-template catalogue fetched from the
// messaging provider.
type TemplateHandlers struct {
	templateService services.TemplateService
}

func NewTemplateHandlers(templateService services.TemplateService) *TemplateHandlers {
	return &TemplateHandlers{templateService: templateService}
}

// ListTemplates handles GET /templates
func (h *TemplateHandlers) ListTemplates(c echo.Context) error {
	ctx := c.Request().Context()

	templates, err := h.templateService.ListTemplates(ctx)
	if err != nil {
		log.Printf("template fetch failed: %v", err)
		return common.SendServerError(c, "Failed to fetch templates")
	}

	return c.JSON(http.StatusOK, map[string]any{"templates": templates})
}

// ClearTemplateCache handles DELETE /templates/cache, dropping the cached
// catalogue without fetching a replacement.
func (h *TemplateHandlers) ClearTemplateCache(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.templateService.Invalidate(ctx); err != nil {
		log.Printf("template cache clear failed: %v", err)
		return common.SendServerError(c, "Failed to clear template cache")
	}

	return c.NoContent(http.StatusNoContent)
}

// RefreshTemplates handles POST /templates/refresh, forcing a bypass of the
// cached catalogue.
func (h *TemplateHandlers) RefreshTemplates(c echo.Context) error {
	ctx := c.Request().Context()

	templates, err := h.templateService.Refresh(ctx)
	if err != nil {
		log.Printf("template refresh failed: %v", err)
		return common.SendServerError(c, "Failed to refresh templates")
	}

	return c.JSON(http.StatusOK, map[string]any{"templates": templates})
}
