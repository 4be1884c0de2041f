package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/usecase"
)

// DriverHandler rotas de /motoristas.
type DriverHandler struct {
	uc *usecase.DriverUseCase
}

// NewDriverHandler constrói o handler.
func NewDriverHandler(uc *usecase.DriverUseCase) *DriverHandler {
	return &DriverHandler{uc: uc}
}

// List godoc
// @Summary      Listar motoristas
// @Tags         motoristas
// @Security     Bearer
// @Produce      json
// @Param        page   query  int     false  "Página"  default(1)
// @Param        limit  query  int     false  "Itens por página"  default(10)
// @Param        status  query  string  false  "ativo | inativo | ferias"
// @Param        tipo    query  string  false  "proprio | terceirizado | agregado"
// @Success      200  {object}  dto.Envelope
// @Router       /api/motoristas [get]
func (h *DriverHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(c.UserContext(), dto.DriverListQuery{
		Status: queryString(c, "status"),
		Type:   queryString(c, "tipo"),
		Page:   pageQuery(c),
	})
	if err != nil {
		return writeError(c, err, "Erro ao listar motoristas")
	}
	return okPage(c, "Motoristas listados com sucesso", page.Items, page.Meta)
}

// GetByID godoc
// @Summary      Obter motorista
// @Tags         motoristas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/motoristas/{id} [get]
func (h *DriverHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao obter motorista")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Erro ao obter motorista")
	}
	return ok(c, "Motorista carregado com sucesso", out)
}

// Create godoc
// @Summary      Cadastrar motorista
// @Tags         motoristas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDriverRequest  true  "Dados"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/motoristas [post]
func (h *DriverHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDriverRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err, "Erro ao criar motorista")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "Erro ao criar motorista")
	}
	return created(c, "Motorista criado com sucesso", out)
}

// Update godoc
// @Summary      Atualizar motorista
// @Tags         motoristas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateDriverRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/motoristas/{id} [put]
func (h *DriverHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao atualizar motorista")
	}
	var in dto.UpdateDriverRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err, "Erro ao atualizar motorista")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err, "Erro ao atualizar motorista")
	}
	return ok(c, "Motorista atualizado com sucesso", out)
}

// Delete godoc
// @Summary      Remover motorista
// @Tags         motoristas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/motoristas/{id} [delete]
func (h *DriverHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao remover motorista")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, "Erro ao remover motorista")
	}
	return ok(c, "Motorista removido com sucesso", nil)
}
