package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal is the verified caller behind a request.
type Principal struct {
	Subject   string
	Role      domain.Role
	ExpiresAt time.Time
}

// AuthMiddleware rejects requests without a valid bearer token.
type AuthMiddleware struct {
	tokens *TokenManager
}

func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle verifies the bearer token and stores the caller for later gates.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw, err := bearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}
	claims, err := m.tokens.ParseToken(raw)
	if err != nil {
		return errorutil.NewUnauthorized("invalid or expired token")
	}
	if !claims.Role.Valid() {
		return errorutil.NewUnauthorized(fmt.Sprintf("unknown role %q", claims.Role))
	}

	principal := &Principal{Subject: claims.Subject, Role: claims.Role}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errorutil.NewUnauthorized("missing authorization header")
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errorutil.NewUnauthorized("authorization header must be 'Bearer <token>'")
	}
	return token, nil
}

// PrincipalFromContext returns the caller stored by Handle.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(principalKey).(*Principal)
	return principal, ok && principal != nil
}
