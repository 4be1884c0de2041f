package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/pkg/jwt"
)

// Locals keys da identidade autenticada.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// AuthMiddleware valida o Bearer Token JWT e põe UserID, Email e Role em c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Token não informado")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Formato esperado: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Token vazio")
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Token inválido ou expirado")
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalEmail, id.Email)
		c.Locals(LocalRole, id.Role)

		l := logFromCtx(c).With().Int64("user_id", id.UserID).Logger()
		c.SetUserContext(l.WithContext(c.UserContext()))
		return c.Next()
	}
}

// RequireRole deixa passar apenas os papéis informados. Usar DEPOIS de AuthMiddleware.
// Token sem papel → 401 MISSING_ROLE; papel fora da lista → 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_ROLE", "Token sem papel de acesso")
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return fail(c, fiber.StatusForbidden, CodeForbidden, "Acesso negado para o papel "+role)
	}
}

// GetUserID devolve o UserID do contexto (0 sem autenticação).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetEmail devolve o email do token.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetRole devolve o papel do token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
