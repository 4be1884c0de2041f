package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/analytics"
)

// DashboardHandler endpoints do painel.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// KPIs devolve os indicadores gerais do painel.
// GET /api/dashboard/kpis
//
// Resposta servida do cache traz o sufixo " (cache)" na mensagem.
func (h *DashboardHandler) KPIs(c *fiber.Ctx) error {
	out, hit, err := h.uc.KPIs(c.UserContext())
	if err != nil {
		return writeError(c, err, "Erro ao carregar KPIs")
	}
	return ok(c, cached("KPIs carregados com sucesso", hit), out)
}

// Routes devolve lucro, receita e custos por origem/destino.
// GET /api/dashboard/estatisticas-rotas
func (h *DashboardHandler) Routes(c *fiber.Ctx) error {
	out, hit, err := h.uc.Routes(c.UserContext())
	if err != nil {
		return writeError(c, err, "Erro ao carregar estatísticas por rota")
	}
	return ok(c, cached("Estatísticas por rota carregadas com sucesso", hit), out)
}
