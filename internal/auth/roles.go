package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

// RequireRole admits callers holding one of allowed.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	names := make([]string, len(allowed))
	for i, r := range allowed {
		names[i] = string(r)
	}
	denied := fmt.Sprintf("requires role %s", strings.Join(names, " or "))

	return gate(func(c *fiber.Ctx, p *Principal) error {
		for _, r := range allowed {
			if p.Role == r {
				return nil
			}
		}
		return errorutil.NewForbidden(denied)
	})
}

// RequireWrite admits reads from any role and writes from editors and admins.
func RequireWrite() fiber.Handler {
	return gate(func(c *fiber.Ctx, p *Principal) error {
		if isRead(c.Method()) || p.Role.CanWrite() {
			return nil
		}
		return errorutil.NewForbidden(fmt.Sprintf("%s requires editor role", c.Method()))
	})
}

func gate(check func(*fiber.Ctx, *Principal) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return errorutil.NewUnauthorized("authentication required")
		}
		if err := check(c, principal); err != nil {
			return err
		}
		return c.Next()
	}
}

func isRead(method string) bool {
	return method == fiber.MethodGet || method == fiber.MethodHead || method == fiber.MethodOptions
}
