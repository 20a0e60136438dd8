// Package middleware provides request filters: authentication context,
// structured logging, tracing, and rate limiting.
package middleware

import (
	"strings"

	"waypost/internal/auth"
	"waypost/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// AuthLocalsKey is the fiber locals key holding the request's auth.RequestAuth.
const AuthLocalsKey = "requestAuth"

// Authenticate derives the request-scoped authentication context from the
// Authorization header. It is a pass-through filter, never a gate: absent or
// invalid credentials leave the request unauthenticated and continue, and the
// decision to require identity is made per operation. The tri-state outcome is
// recorded in metrics so invalid tokens are visible separately from absent ones.
func Authenticate(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ra := auth.RequestAuth{Outcome: auth.OutcomeAbsent}

		if header := c.Get(fiber.HeaderAuthorization); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				ra.Outcome = auth.OutcomeInvalid
			} else if claims, err := tokens.Verify(parts[1]); err != nil {
				ra.Outcome = auth.OutcomeInvalid
				Logger.DebugContext(c.UserContext(), "token verification failed",
					"error", err.Error())
			} else {
				ra = auth.RequestAuth{
					Outcome: auth.OutcomeValid,
					UserID:  claims.UserID,
					Email:   claims.Email,
				}
			}
		}

		observability.AuthOutcomes.WithLabelValues(ra.Outcome.String()).Inc()

		c.Locals(AuthLocalsKey, ra)
		c.SetUserContext(auth.WithRequestAuth(c.UserContext(), ra))
		return c.Next()
	}
}

// RequestAuthFrom returns the authentication context stored by Authenticate.
func RequestAuthFrom(c *fiber.Ctx) auth.RequestAuth {
	if ra, ok := c.Locals(AuthLocalsKey).(auth.RequestAuth); ok {
		return ra
	}
	return auth.RequestAuth{Outcome: auth.OutcomeAbsent}
}
