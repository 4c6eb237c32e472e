package http

import (
	"net/http"
	"strings"

	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// BearerAuth verifies the Authorization header with the credential service
// and stores the resulting actor in the request context. Requests without
// a valid bearer token are rejected with 401.
func BearerAuth(credentials ports.CredentialService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{Message: "Missing authorization header"})
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{Message: "Invalid authorization header"})
			}

			claims, err := credentials.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{Message: "Invalid or expired token"})
			}

			ctx.Set(actorContextKey, services.Actor{ID: claims.UserID, Role: claims.Role})
			return next(ctx)
		}
	}
}

func actorFrom(ctx echo.Context) (services.Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(services.Actor)
	return actor, ok
}
