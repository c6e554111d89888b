package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/mfk4us/bocc-client-panel/internal/common"
)

// JWTCustomClaims carries the caller identity the panel scopes everything by.
type JWTCustomClaims struct {
	Role         string `json:"role"`
	WorkflowName string `json:"workflow_name"`
	Email        string `json:"email"`
	jwt.RegisteredClaims
}

// JWTConfig builds the echo-jwt configuration. On success the profile ID,
// role and workflow are installed into the request context so handlers and
// services never touch the token themselves.
func JWTConfig(jwtSecret string) echojwt.Config {
	return echojwt.Config{
		SigningKey: []byte(jwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(JWTCustomClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*JWTCustomClaims)
			if !ok {
				return
			}
			profileID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return
			}

			ctx := context.WithValue(c.Request().Context(), common.ProfileIDKey, profileID)
			ctx = context.WithValue(ctx, common.RoleKey, claims.Role)
			ctx = context.WithValue(ctx, common.WorkflowKey, claims.WorkflowName)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}
