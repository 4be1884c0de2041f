package http

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/freight"
)

var nonDigitRe = regexp.MustCompile(`\D`)

// validate instância única; struct caching do validator é seguro para uso concorrente.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Campos reportados pelo nome JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// decimal.Decimal é comparado como número nas regras gt/gte.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("placa", func(fl validator.FieldLevel) bool {
		return freight.IsValidPlate(fl.Field().String())
	})
	_ = v.RegisterValidation("documento", func(fl validator.FieldLevel) bool {
		digits := nonDigitRe.ReplaceAllString(fl.Field().String(), "")
		return len(digits) == 11 || len(digits) == 14
	})
	return v
}

// parseBody lê o JSON da requisição e aplica as regras validate:"...".
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidationError("body", "corpo inválido: "+err.Error())
	}
	return validateStruct(out)
}

// validateStruct converte falhas do validator em *domain.ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldIssue, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, domain.FieldIssue{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// fieldPath remove o nome da struct raiz: "CostBatchRequest.custos[0].valor" → "custos[0].valor".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "gt":
		return fmt.Sprintf("deve ser maior que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("deve ser maior ou igual a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("deve ser menor ou igual a %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("informe ao menos %s item(ns)", fe.Param())
		}
		return fmt.Sprintf("deve ter ao menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
	case "len":
		return fmt.Sprintf("deve ter exatamente %s caracteres", fe.Param())
	case "alpha":
		return "deve conter apenas letras"
	case "email":
		return "email inválido"
	case "oneof":
		return "valor inválido, use um de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "data inválida, use AAAA-MM-DD"
	case "placa":
		return "placa inválida (ABC-1234 ou ABC-1D23)"
	case "documento":
		return "documento inválido (CPF/CNPJ)"
	}
	return "valor inválido"
}
