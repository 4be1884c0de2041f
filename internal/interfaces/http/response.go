package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
)

// Códigos de erro do corpo de resposta.
const (
	CodeValidation     = "VALIDATION"
	CodeInvalidBody    = "INVALID_BODY"
	CodeInvalidParam   = "INVALID_PARAM"
	CodeNotFound       = "NOT_FOUND"
	CodeBusinessRule   = "BUSINESS_RULE"
	CodeSchemaOutdated = "DB_SCHEMA_OUTDATED"
	CodeDuplicate      = "DUPLICATE"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeInternal       = "INTERNAL"
)

const schemaHint = "execute as migrações: agrotrack-admin migrate up"

// notFoundMessages mensagens de 404 pelo recurso que abre a mensagem do erro ("frete 5: ...").
var notFoundMessages = map[string]string{
	"frete":     "Frete não encontrado",
	"custo":     "Custo não encontrado",
	"fazenda":   "Fazenda não encontrada",
	"motorista": "Motorista não encontrado",
	"veículo":   "Caminhão não encontrado",
	"pagamento": "Pagamento não encontrado",
	"usuário":   "Usuário não encontrado",
}

func ok(c *fiber.Ctx, message string, data any) error {
	return c.JSON(dto.Envelope{Success: true, Message: message, Data: data})
}

func created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope{Success: true, Message: message, Data: data})
}

func okPage(c *fiber.Ctx, message string, data any, meta dto.PageMeta) error {
	return c.JSON(dto.Envelope{Success: true, Message: message, Data: data, Meta: &meta})
}

func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Code: code, Message: message})
}

// cached acrescenta o sufixo quando a resposta veio do cache.
func cached(message string, hit bool) string {
	if hit {
		return message + " (cache)"
	}
	return message
}

// writeError traduz erros de domínio em status HTTP. Erros desconhecidos viram 500
// com mensagem genérica; o detalhe fica só no log da requisição.
func writeError(c *fiber.Ctx, err error, internalMsg string) error {
	var (
		verr *domain.ValidationError
		ferr *domain.FieldError
	)
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeValidation, Message: "Dados inválidos", Errors: verr.Fields,
		})
	case errors.As(err, &ferr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeValidation, Message: capitalize(ferr.Message), Field: ferr.Field,
		})
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, CodeNotFound, notFoundMessage(err))
	case errors.Is(err, domain.ErrSchemaOutdated):
		logFromCtx(c).Error().Err(err).Msg("esquema do banco desatualizado")
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeSchemaOutdated, Message: "Banco de dados sem as colunas necessárias", Hint: schemaHint,
		})
	case errors.Is(err, domain.ErrBusinessRule):
		return fail(c, fiber.StatusBadRequest, CodeBusinessRule, capitalize(domain.RuleMessage(err)))
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, CodeDuplicate, "Registro duplicado")
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, CodeUnauthorized, "Credenciais inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, CodeForbidden, "Acesso negado")
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, CodeValidation, capitalize(err.Error()))
	}
	logFromCtx(c).Error().Err(err).Str("path", c.Path()).Msg(internalMsg)
	return fail(c, fiber.StatusInternalServerError, CodeInternal, internalMsg)
}

func notFoundMessage(err error) string {
	resource, _, _ := strings.Cut(err.Error(), " ")
	if msg, ok := notFoundMessages[resource]; ok {
		return msg
	}
	return "Registro não encontrado"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func logFromCtx(c *fiber.Ctx) *zerolog.Logger {
	return zerolog.Ctx(c.UserContext())
}
