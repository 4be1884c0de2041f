package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/analytics"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/auth"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/logistics"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/usecase"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ShipmentUC  *logistics.ShipmentUseCase
	CostUC      *logistics.CostUseCase
	PaymentUC   *logistics.PaymentUseCase
	FarmUC      *usecase.FarmUseCase
	DriverUC    *usecase.DriverUseCase
	VehicleUC   *usecase.VehicleUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
	ServiceName string

	// Ping verifica o banco no /health; nil responde sempre ok.
	Ping func(ctx context.Context) error

	// LoginRateLimit tentativas de login por minuto e IP (0 = 10).
	LoginRateLimit int
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))

	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	limit := deps.LoginRateLimit
	if limit <= 0 {
		limit = 10
	}
	api.Post("/auth/login", LoginLimiter(limit, time.Minute), authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/registrar", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Fretes: rotas fixas antes de /:id
	shipments := protected.Group("/fretes")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Get("/pendentes/exportar", shipmentHandler.ExportPending)
	shipments.Get("/pendentes", shipmentHandler.Pending)
	shipments.Get("/exportar", shipmentHandler.Export)
	shipments.Get("/", shipmentHandler.List)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Put("/:id", shipmentHandler.Update)
	shipments.Delete("/:id", shipmentHandler.Delete)

	// Custos
	costs := protected.Group("/custos")
	costHandler := NewCostHandler(deps.CostUC)
	costs.Get("/", costHandler.List)
	costs.Post("/", costHandler.Create)
	costs.Get("/:id", costHandler.GetByID)
	costs.Put("/:id", costHandler.Update)
	costs.Delete("/:id", costHandler.Delete)

	// Fazendas
	farms := protected.Group("/fazendas")
	farmHandler := NewFarmHandler(deps.FarmUC)
	farms.Get("/", farmHandler.List)
	farms.Post("/", farmHandler.Create)
	farms.Get("/:id", farmHandler.GetByID)
	farms.Put("/:id", farmHandler.Update)
	farms.Delete("/:id", farmHandler.Delete)
	farms.Post("/:id/recalcular", farmHandler.Recalculate)

	// Motoristas
	drivers := protected.Group("/motoristas")
	driverHandler := NewDriverHandler(deps.DriverUC)
	drivers.Get("/", driverHandler.List)
	drivers.Post("/", driverHandler.Create)
	drivers.Get("/:id", driverHandler.GetByID)
	drivers.Put("/:id", driverHandler.Update)
	drivers.Delete("/:id", driverHandler.Delete)

	// Frota
	fleet := protected.Group("/frota")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	fleet.Get("/", vehicleHandler.List)
	fleet.Post("/", vehicleHandler.Create)
	fleet.Get("/:id", vehicleHandler.GetByID)
	fleet.Put("/:id", vehicleHandler.Update)
	fleet.Delete("/:id", vehicleHandler.Delete)

	// Pagamentos
	payments := protected.Group("/pagamentos")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Get("/", paymentHandler.List)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/:id/pdf", paymentHandler.Receipt)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Put("/:id", paymentHandler.Update)
	payments.Delete("/:id", paymentHandler.Delete)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/kpis", dashboardHandler.KPIs)
	dashboard.Get("/estatisticas-rotas", dashboardHandler.Routes)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.Ping(ctx); err != nil {
				logFromCtx(c).Error().Err(err).Msg("health: banco indisponível")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "error", "service": deps.ServiceName, "database": "down",
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName, "database": "up"})
	}
}
