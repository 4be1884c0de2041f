package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
)

// paramID lê o :id numérico da rota.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "id inválido")
	}
	return id, nil
}

// queryInt64 lê um filtro numérico opcional; valor não numérico é erro de validação.
func queryInt64(c *fiber.Ctx, names ...string) (*int64, error) {
	for _, name := range names {
		raw := strings.TrimSpace(c.Query(name))
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, domain.NewValidationError(name, name+" inválido")
		}
		return &n, nil
	}
	return nil, nil
}

// queryString devolve nil para filtro ausente ou vazio.
func queryString(c *fiber.Ctx, name string) *string {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil
	}
	return &s
}

func pageQuery(c *fiber.Ctx) dto.PageQuery {
	return dto.NewPageQuery(c.QueryInt("page", 1), c.QueryInt("limit", 10))
}

func sendFile(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
