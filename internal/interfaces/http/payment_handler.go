package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/dto"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/logistics"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain"
)

// PaymentHandler rotas de /pagamentos. :id aceita o id numérico ou o codigo_pagamento.
type PaymentHandler struct {
	uc *logistics.PaymentUseCase
}

// NewPaymentHandler constrói o handler.
func NewPaymentHandler(uc *logistics.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// List godoc
// @Summary      Listar pagamentos
// @Description  Inclui resumo_fretes_por_proprietario com os fretes já pagos.
// @Tags         pagamentos
// @Security     Bearer
// @Produce      json
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Itens por página"  default(10)
// @Param        motorista_id  query  int     false  "Proprietário"
// @Param        status        query  string  false  "pendente | processando | pago | cancelado"
// @Success      200  {object}  dto.Envelope
// @Router       /api/pagamentos [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	driverID, err := queryInt64(c, "motorista_id", "proprietario_id")
	if err != nil {
		return writeError(c, err, "Erro ao listar pagamentos")
	}
	out, meta, err := h.uc.List(c.UserContext(), dto.PaymentListQuery{
		DriverID: driverID,
		Status:   queryString(c, "status"),
		Page:     pageQuery(c),
	})
	if err != nil {
		return writeError(c, err, "Erro ao listar pagamentos")
	}
	return okPage(c, "Pagamentos listados com sucesso", out, *meta)
}

// GetByID godoc
// @Summary      Obter pagamento
// @Tags         pagamentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID ou codigo_pagamento"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pagamentos/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	ref, err := paymentRef(c)
	if err != nil {
		return writeError(c, err, "Erro ao obter pagamento")
	}
	out, err := h.uc.Get(c.UserContext(), ref)
	if err != nil {
		return writeError(c, err, "Erro ao obter pagamento")
	}
	return ok(c, "Pagamento carregado com sucesso", out)
}

// Create godoc
// @Summary      Registrar pagamento
// @Description  Bloqueia os fretes incluídos, recusa fretes inexistentes, já pagos ou de outro proprietário e marca os fretes como pagos.
// @Tags         pagamentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePaymentRequest  true  "Dados do pagamento"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pagamentos [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err, "Erro ao criar pagamento")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "Erro ao criar pagamento")
	}
	return created(c, "Pagamento criado com sucesso", out)
}

// Update godoc
// @Summary      Atualizar pagamento
// @Description  metodo_pagamento é definido no cadastro do motorista e não pode ser alterado.
// @Tags         pagamentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID ou codigo_pagamento"
// @Param        body  body  dto.UpdatePaymentRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pagamentos/{id} [put]
func (h *PaymentHandler) Update(c *fiber.Ctx) error {
	ref, err := paymentRef(c)
	if err != nil {
		return writeError(c, err, "Erro ao atualizar pagamento")
	}
	var in dto.UpdatePaymentRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err, "Erro ao atualizar pagamento")
	}
	out, err := h.uc.Update(c.UserContext(), ref, in)
	if err != nil {
		return writeError(c, err, "Erro ao atualizar pagamento")
	}
	return ok(c, "Pagamento atualizado com sucesso", out)
}

// Delete godoc
// @Summary      Remover pagamento
// @Description  Os fretes vinculados voltam a ficar pendentes.
// @Tags         pagamentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID ou codigo_pagamento"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pagamentos/{id} [delete]
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	ref, err := paymentRef(c)
	if err != nil {
		return writeError(c, err, "Erro ao remover pagamento")
	}
	if err := h.uc.Delete(c.UserContext(), ref); err != nil {
		return writeError(c, err, "Erro ao remover pagamento")
	}
	return ok(c, "Pagamento removido. Os fretes vinculados voltaram a ficar pendentes.", nil)
}

// Receipt godoc
// @Summary      Comprovante do pagamento (PDF)
// @Tags         pagamentos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID ou codigo_pagamento"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pagamentos/{id}/pdf [get]
func (h *PaymentHandler) Receipt(c *fiber.Ctx) error {
	ref, err := paymentRef(c)
	if err != nil {
		return writeError(c, err, "Erro ao gerar comprovante")
	}
	p, pdf, err := h.uc.Receipt(c.UserContext(), ref)
	if err != nil {
		return writeError(c, err, "Erro ao gerar comprovante")
	}
	return sendFile(c, "application/pdf", "comprovante_"+p.Code+".pdf", pdf)
}

func paymentRef(c *fiber.Ctx) (string, error) {
	ref := strings.TrimSpace(c.Params("id"))
	if ref == "" {
		return "", domain.NewValidationError("id", "id inválido")
	}
	return ref, nil
}
