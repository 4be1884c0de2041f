package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/usecase"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
)

// VehicleHandler rotas de /frota.
type VehicleHandler struct {
	uc *usecase.VehicleUseCase
}

// NewVehicleHandler constrói o handler.
func NewVehicleHandler(uc *usecase.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{uc: uc}
}

// List godoc
// @Summary      Listar caminhões
// @Tags         frota
// @Security     Bearer
// @Produce      json
// @Param        page   query  int     false  "Página"  default(1)
// @Param        limit  query  int     false  "Itens por página"  default(10)
// @Param        status        query  string  false  "disponivel | em_viagem | manutencao | inativo"
// @Param        tipo_veiculo  query  string  false  "TRUCK | TOCO | CARRETA | BITREM | RODOTREM | VUC"
// @Success      200  {object}  dto.Envelope
// @Router       /api/frota [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(c.UserContext(), dto.VehicleListQuery{
		Status: queryString(c, "status"),
		Type:   queryString(c, "tipo_veiculo"),
		Page:   pageQuery(c),
	})
	if err != nil {
		return writeError(c, err, "Erro ao listar caminhões")
	}
	return okPage(c, "Caminhões listados com sucesso", page.Items, page.Meta)
}

// GetByID godoc
// @Summary      Obter caminhão
// @Tags         frota
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/frota/{id} [get]
func (h *VehicleHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao obter caminhão")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Erro ao obter caminhão")
	}
	return ok(c, "Caminhão carregado com sucesso", out)
}

// Create godoc
// @Summary      Cadastrar caminhão
// @Tags         frota
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVehicleRequest  true  "Dados"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/frota [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, domain.NewValidationError("body", "corpo inválido: "+err.Error()), "Erro ao criar caminhão")
	}
	in.Normalize()
	if err := validateStruct(&in); err != nil {
		return writeError(c, err, "Erro ao criar caminhão")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "Erro ao criar caminhão")
	}
	return created(c, "Caminhão criado com sucesso", out)
}

// Update godoc
// @Summary      Atualizar caminhão
// @Tags         frota
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateVehicleRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/frota/{id} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao atualizar caminhão")
	}
	var in dto.UpdateVehicleRequest
	if err := c.BodyParser(&in); err != nil {
		return writeError(c, domain.NewValidationError("body", "corpo inválido: "+err.Error()), "Erro ao atualizar caminhão")
	}
	in.Normalize()
	if err := validateStruct(&in); err != nil {
		return writeError(c, err, "Erro ao atualizar caminhão")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err, "Erro ao atualizar caminhão")
	}
	return ok(c, "Caminhão atualizado com sucesso", out)
}

// Delete godoc
// @Summary      Remover caminhão
// @Tags         frota
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/frota/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao remover caminhão")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, "Erro ao remover caminhão")
	}
	return ok(c, "Caminhão removido com sucesso", nil)
}
