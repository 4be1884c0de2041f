package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/logistics"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
)

// CostHandler rotas de /custos.
type CostHandler struct {
	uc *logistics.CostUseCase
}

// NewCostHandler constrói o handler.
func NewCostHandler(uc *logistics.CostUseCase) *CostHandler {
	return &CostHandler{uc: uc}
}

// List godoc
// @Summary      Listar custos
// @Tags         custos
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página"  default(1)
// @Param        limit     query  int     false  "Itens por página"  default(10)
// @Param        frete_id  query  int     false  "Frete"
// @Param        tipo      query  string  false  "Tipo do custo"
// @Success      200  {object}  dto.Envelope
// @Router       /api/custos [get]
func (h *CostHandler) List(c *fiber.Ctx) error {
	shipmentID, err := queryInt64(c, "frete_id")
	if err != nil {
		return writeError(c, err, "Erro ao listar custos")
	}
	page, err := h.uc.List(c.UserContext(), dto.CostListQuery{
		ShipmentID: shipmentID,
		Type:       queryString(c, "tipo"),
		Page:       pageQuery(c),
	})
	if err != nil {
		return writeError(c, err, "Erro ao listar custos")
	}
	return okPage(c, "Custos listados com sucesso", page.Items, page.Meta)
}

// GetByID godoc
// @Summary      Obter custo
// @Tags         custos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID do custo"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/custos/{id} [get]
func (h *CostHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao obter custo")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Erro ao obter custo")
	}
	return ok(c, "Custo carregado com sucesso", out)
}

// Create godoc
// @Summary      Criar custo(s)
// @Description  Aceita um custo avulso ou {frete_id, custos: [...]}. Todos os custos do lote devem ser do mesmo frete.
// @Tags         custos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CostBatchRequest  true  "Custo avulso ou lote"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/custos [post]
func (h *CostHandler) Create(c *fiber.Ctx) error {
	var batch dto.CostBatchRequest
	if err := c.BodyParser(&batch); err != nil {
		return writeError(c, domain.NewValidationError("body", "corpo inválido: "+err.Error()), "Erro ao criar custo")
	}

	if batch.Items == nil {
		var item dto.CostItemRequest
		if err := parseBody(c, &item); err != nil {
			return writeError(c, err, "Erro ao criar custo")
		}
		res, err := h.uc.Create(c.UserContext(), []dto.CostItemRequest{item})
		if err != nil {
			return writeError(c, err, "Erro ao criar custo")
		}
		return created(c, "Custo criado com sucesso", fiber.Map{"id": res.IDs[0]})
	}

	items := *batch.Items
	issues := make([]domain.FieldIssue, 0)
	for i := range items {
		if items[i].ShipmentID == nil {
			items[i].ShipmentID = batch.ShipmentID
		}
		if err := validateStruct(&items[i]); err != nil {
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				return writeError(c, err, "Erro ao criar custo")
			}
			for _, f := range ve.Fields {
				issues = append(issues, domain.FieldIssue{Field: fmt.Sprintf("custos[%d].%s", i, f.Field), Message: f.Message})
			}
		}
	}
	if len(issues) > 0 {
		return writeError(c, &domain.ValidationError{Fields: issues}, "Erro ao criar custo")
	}

	res, err := h.uc.Create(c.UserContext(), items)
	if err != nil {
		return writeError(c, err, "Erro ao criar custo")
	}
	return created(c, "Custos criados com sucesso", res)
}

// Update godoc
// @Summary      Atualizar custo
// @Description  Mudar frete_id reconcilia o frete de origem e o de destino.
// @Tags         custos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID do custo"
// @Param        body  body  dto.UpdateCostRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/custos/{id} [put]
func (h *CostHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao atualizar custo")
	}
	var in dto.UpdateCostRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err, "Erro ao atualizar custo")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err, "Erro ao atualizar custo")
	}
	return ok(c, "Custo atualizado com sucesso", out)
}

// Delete godoc
// @Summary      Remover custo
// @Tags         custos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID do custo"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/custos/{id} [delete]
func (h *CostHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao remover custo")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, "Erro ao remover custo")
	}
	return ok(c, "Custo removido com sucesso", nil)
}
