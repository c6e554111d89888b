package handlers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mfk4us/bocc-client-panel/internal/common"
	"github.com/mfk4us/bocc-client-panel/internal/services"
)

// SessionHandlers exposes the explicit session/context object that replaces
// ambient client-side storage.
type SessionHandlers struct {
	sessionService services.SessionService
}

func NewSessionHandlers(sessionService services.SessionService) *SessionHandlers {
	return &SessionHandlers{sessionService: sessionService}
}

// GetSession handles GET /session
func (h *SessionHandlers) GetSession(c echo.Context) error {
	ctx := c.Request().Context()

	profileID, ok := common.GetProfileIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	session, err := h.sessionService.Get(ctx, profileID)
	if err != nil {
		log.Printf("session read failed for %s: %v", profileID, err)
		return common.SendServerError(c, "Failed to read session")
	}

	return c.JSON(http.StatusOK, session)
}

// SaveSession handles PUT /session
func (h *SessionHandlers) SaveSession(c echo.Context) error {
	ctx := c.Request().Context()

	profileID, ok := common.GetProfileIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var session services.Session
	if err := c.Bind(&session); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.sessionService.Save(ctx, profileID, &session); err != nil {
		log.Printf("session save failed for %s: %v", profileID, err)
		return common.SendServerError(c, "Failed to save session")
	}

	return c.JSON(http.StatusOK, session)
}

// ClearSession handles DELETE /session
func (h *SessionHandlers) ClearSession(c echo.Context) error {
	ctx := c.Request().Context()

	profileID, ok := common.GetProfileIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.sessionService.Clear(ctx, profileID); err != nil {
		log.Printf("session clear failed for %s: %v", profileID, err)
		return common.SendServerError(c, "Failed to clear session")
	}

	return c.NoContent(http.StatusNoContent)
}

// TakeLastRoute handles POST /session/last-route/take. The stored route is
// returned once and cleared, mirroring the restore-then-forget navigation
// behavior of the panel.
func (h *SessionHandlers) TakeLastRoute(c echo.Context) error {
	ctx := c.Request().Context()

	profileID, ok := common.GetProfileIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	route, err := h.sessionService.TakeLastRoute(ctx, profileID)
	if err != nil {
		log.Printf("last-route take failed for %s: %v", profileID, err)
		return common.SendServerError(c, "Failed to read last route")
	}

	return c.JSON(http.StatusOK, map[string]string{"last_route": route})
}
