package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/usecase"
)

// FarmHandler rotas de /fazendas.
type FarmHandler struct {
	uc *usecase.FarmUseCase
}

// NewFarmHandler constrói o handler.
func NewFarmHandler(uc *usecase.FarmUseCase) *FarmHandler {
	return &FarmHandler{uc: uc}
}

// List godoc
// @Summary      Listar fazendas
// @Tags         fazendas
// @Security     Bearer
// @Produce      json
// @Param        page   query  int     false  "Página"  default(1)
// @Param        limit  query  int     false  "Itens por página"  default(10)
// @Param        estado      query  string  false  "UF"
// @Param        mercadoria  query  string  false  "Mercadoria"
// @Success      200  {object}  dto.Envelope
// @Router       /api/fazendas [get]
func (h *FarmHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(c.UserContext(), dto.FarmListQuery{
		State:     queryString(c, "estado"),
		Commodity: queryString(c, "mercadoria"),
		Page:      pageQuery(c),
	})
	if err != nil {
		return writeError(c, err, "Erro ao listar fazendas")
	}
	return okPage(c, "Fazendas listadas com sucesso", page.Items, page.Meta)
}

// GetByID godoc
// @Summary      Obter fazenda
// @Tags         fazendas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fazendas/{id} [get]
func (h *FarmHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao obter fazenda")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Erro ao obter fazenda")
	}
	return ok(c, "Fazenda carregada com sucesso", out)
}

// Create godoc
// @Summary      Cadastrar fazenda
// @Tags         fazendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFarmRequest  true  "Dados"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fazendas [post]
func (h *FarmHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFarmRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err, "Erro ao criar fazenda")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "Erro ao criar fazenda")
	}
	return created(c, "Fazenda criada com sucesso", out)
}

// Update godoc
// @Summary      Atualizar fazenda
// @Tags         fazendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateFarmRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fazendas/{id} [put]
func (h *FarmHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao atualizar fazenda")
	}
	var in dto.UpdateFarmRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err, "Erro ao atualizar fazenda")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err, "Erro ao atualizar fazenda")
	}
	return ok(c, "Fazenda atualizada com sucesso", out)
}

// Delete godoc
// @Summary      Remover fazenda
// @Tags         fazendas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fazendas/{id} [delete]
func (h *FarmHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao remover fazenda")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, "Erro ao remover fazenda")
	}
	return ok(c, "Fazenda removida com sucesso", nil)
}

// Recalculate godoc
// @Summary      Recalcular totais da fazenda
// @Description  Refaz total_toneladas, total_sacas_carregadas, faturamento_total e ultimo_frete a partir dos fretes vinculados.
// @Tags         fazendas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fazendas/{id}/recalcular [post]
func (h *FarmHandler) Recalculate(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao recalcular fazenda")
	}
	out, err := h.uc.Recalculate(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Erro ao recalcular fazenda")
	}
	return ok(c, "Totais da fazenda recalculados", out)
}
