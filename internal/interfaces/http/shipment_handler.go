package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/logistics"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/xlsx"
)

// ShipmentHandler rotas de /fretes.
type ShipmentHandler struct {
	uc *logistics.ShipmentUseCase
}

// NewShipmentHandler constrói o handler.
func NewShipmentHandler(uc *logistics.ShipmentUseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar fretes
// @Tags         fretes
// @Security     Bearer
// @Produce      json
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Itens por página"  default(10)
// @Param        data_inicio   query  string  false  "AAAA-MM-DD"
// @Param        data_fim      query  string  false  "AAAA-MM-DD"
// @Param        motorista_id  query  int     false  "Motorista/proprietário"
// @Param        fazenda_id    query  int     false  "Fazenda"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fretes [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	q, err := shipmentListQuery(c)
	if err != nil {
		return writeError(c, err, "Erro ao listar fretes")
	}
	q.Page = pageQuery(c)
	page, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err, "Erro ao listar fretes")
	}
	return okPage(c, "Fretes listados com sucesso", page.Items, page.Meta)
}

// GetByID godoc
// @Summary      Obter frete
// @Tags         fretes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID do frete"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fretes/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao obter frete")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Erro ao obter frete")
	}
	return ok(c, "Frete carregado com sucesso", out)
}

// Create godoc
// @Summary      Criar frete
// @Description  Valida motorista, caminhão e fazenda, grava o frete e recalcula os totais da fazenda na mesma transação.
// @Tags         fretes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "Dados do frete"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fretes [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err, "Erro ao criar frete")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "Erro ao criar frete")
	}
	return created(c, "Frete criado com sucesso", out)
}

// Update godoc
// @Summary      Atualizar frete
// @Description  custos, resultado e pagamento_id não são editáveis. Frete pago não pode ser alterado.
// @Tags         fretes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID do frete"
// @Param        body  body  dto.UpdateShipmentRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fretes/{id} [put]
func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao atualizar frete")
	}
	var in dto.UpdateShipmentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err, "Erro ao atualizar frete")
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err, "Erro ao atualizar frete")
	}
	return ok(c, "Frete atualizado com sucesso", out)
}

// Delete godoc
// @Summary      Remover frete
// @Tags         fretes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID do frete"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fretes/{id} [delete]
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err, "Erro ao remover frete")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, "Erro ao remover frete")
	}
	return ok(c, "Frete removido com sucesso", nil)
}

// Pending godoc
// @Summary      Fretes pendentes por proprietário
// @Tags         fretes
// @Security     Bearer
// @Produce      json
// @Param        motorista_id  query  int  false  "Filtra um proprietário"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fretes/pendentes [get]
func (h *ShipmentHandler) Pending(c *fiber.Ctx) error {
	driverID, err := queryInt64(c, "motorista_id", "proprietario_id")
	if err != nil {
		return writeError(c, err, "Erro ao listar fretes pendentes")
	}
	out, err := h.uc.Pending(c.UserContext(), driverID)
	if err != nil {
		return writeError(c, err, "Erro ao listar fretes pendentes")
	}
	return ok(c, "Fretes pendentes agrupados por proprietário", out)
}

// Export godoc
// @Summary      Exportar fretes (XLSX)
// @Tags         fretes
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        data_inicio   query  string  false  "AAAA-MM-DD"
// @Param        data_fim      query  string  false  "AAAA-MM-DD"
// @Param        motorista_id  query  int     false  "Motorista/proprietário"
// @Param        fazenda_id    query  int     false  "Fazenda"
// @Success      200  {file}  file
// @Router       /api/fretes/exportar [get]
func (h *ShipmentHandler) Export(c *fiber.Ctx) error {
	q, err := shipmentListQuery(c)
	if err != nil {
		return writeError(c, err, "Erro ao exportar fretes")
	}
	data, err := h.uc.Export(c.UserContext(), q)
	if err != nil {
		return writeError(c, err, "Erro ao exportar fretes")
	}
	return sendFile(c, xlsx.ContentType, "fretes_"+time.Now().Format("20060102")+".xlsx", data)
}

// ExportPending godoc
// @Summary      Exportar pendentes por proprietário (XLSX)
// @Tags         fretes
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        motorista_id  query  int  false  "Filtra um proprietário"
// @Success      200  {file}  file
// @Router       /api/fretes/pendentes/exportar [get]
func (h *ShipmentHandler) ExportPending(c *fiber.Ctx) error {
	driverID, err := queryInt64(c, "motorista_id", "proprietario_id")
	if err != nil {
		return writeError(c, err, "Erro ao exportar pendentes")
	}
	data, err := h.uc.ExportPending(c.UserContext(), driverID)
	if err != nil {
		return writeError(c, err, "Erro ao exportar pendentes")
	}
	return sendFile(c, xlsx.ContentType, "fretes_pendentes_"+time.Now().Format("20060102")+".xlsx", data)
}

func shipmentListQuery(c *fiber.Ctx) (dto.ShipmentListQuery, error) {
	driverID, err := queryInt64(c, "motorista_id", "proprietario_id")
	if err != nil {
		return dto.ShipmentListQuery{}, err
	}
	farmID, err := queryInt64(c, "fazenda_id")
	if err != nil {
		return dto.ShipmentListQuery{}, err
	}
	return dto.ShipmentListQuery{
		DateFrom: queryString(c, "data_inicio"),
		DateTo:   queryString(c, "data_fim"),
		DriverID: driverID,
		FarmID:   farmID,
	}, nil
}
