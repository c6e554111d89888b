package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/mfk4us/bocc-client-panel/internal/common"
	"github.com/mfk4us/bocc-client-panel/internal/models"
)

// RequireAdmin gates routes that operate across tenants.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, ok := common.GetRoleFromContext(c.Request().Context())
		if !ok || role != models.RoleAdmin {
			return common.SendForbiddenError(c)
		}
		return next(c)
	}
}
