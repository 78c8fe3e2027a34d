package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bizportal/internal/apperr"
	"bizportal/internal/auth"
	"bizportal/internal/model"
)

// PrincipalLocalKey is the fiber locals key holding the verified auth.Principal.
const PrincipalLocalKey = "principal"

type principalKey struct{}

// RequireRole verifies the bearer token and admits only callers holding role.
// A missing or bad token yields 401, a valid token with another role 403.
func RequireRole(v auth.Verifier, role model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		p, err := v.Verify(token)
		if err != nil {
			msg := apperr.Message(err)
			if msg == "" {
				msg = "invalid token"
			}
			return fiber.NewError(fiber.StatusUnauthorized, msg)
		}
		if p.Role != role {
			return fiber.NewError(fiber.StatusForbidden, string(role)+" role required")
		}

		c.Locals(PrincipalLocalKey, *p)
		c.SetUserContext(context.WithValue(c.UserContext(), principalKey{}, *p))
		return c.Next()
	}
}

// AdminOnly admits admin accounts.
func AdminOnly(v auth.Verifier) fiber.Handler { return RequireRole(v, model.RoleAdmin) }

// ClientOnly admits client accounts.
func ClientOnly(v auth.Verifier) fiber.Handler { return RequireRole(v, model.RoleClient) }

// PrincipalFromCtx returns the caller admitted by RequireRole.
func PrincipalFromCtx(c *fiber.Ctx) (auth.Principal, bool) {
	p, ok := c.Locals(PrincipalLocalKey).(auth.Principal)
	return p, ok
}

// PrincipalFromContext is the context.Context counterpart of PrincipalFromCtx.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(auth.Principal)
	return p, ok
}

func bearerToken(h string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
