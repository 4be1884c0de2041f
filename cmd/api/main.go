package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/analytics"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/auth"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/logistics"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/usecase"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/cache"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/memory"
	infrapdf "github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/pdf"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/postgres"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/xlsx"
	httpRouter "github.com/MatheusVRibeiro/AgroTrack-Backend/internal/interfaces/http"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/pkg/config"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/pkg/logger"
)

// storage reúne o que os casos de uso precisam do armazenamento escolhido.
type storage struct {
	txRunner  ports.TxRunner
	repos     repository.TxRepositories
	dashboard repository.DashboardRepository
	users     repository.UserRepository
	ping      func(ctx context.Context) error
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicação")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir armazenamento")
	}
	defer st.close()

	repos := st.repos
	shipmentUC := logistics.NewShipmentUseCase(st.txRunner, repos.Shipments, xlsx.NewExporter())
	costUC := logistics.NewCostUseCase(st.txRunner, repos.Costs)
	paymentUC := logistics.NewPaymentUseCase(st.txRunner, repos.Payments, repos.Shipments, repos.Drivers, infrapdf.NewReceiptGenerator())
	farmUC := usecase.NewFarmUseCase(st.txRunner, repos.Farms)
	driverUC := usecase.NewDriverUseCase(st.txRunner, repos.Drivers, repos.Vehicles, repos.Shipments)
	vehicleUC := usecase.NewVehicleUseCase(st.txRunner, repos.Vehicles, repos.Shipments)
	dashboardUC := appanalytics.NewDashboardUseCase(st.dashboard, cache.NewTTLCache(), cfg.Cache.TTL)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI em http://localhost:<port>/docs quando o arquivo existe
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "AgroTrack API",
		}))
	} else {
		log.Warn().Str("arquivo", cfg.App.SwaggerFile).Msg("swagger desativado: arquivo não encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ShipmentUC:  shipmentUC,
		CostUC:      costUC,
		PaymentUC:   paymentUC,
		FarmUC:      farmUC,
		DriverUC:    driverUC,
		VehicleUC:   vehicleUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
		Ping:        st.ping,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

// openStorage abre o PostgreSQL ou, com STORAGE_DRIVER=memory, o armazenamento em memória
// (dados perdidos ao encerrar; útil para demonstração local).
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.App.StorageDriver == "memory" {
		store := memory.New()
		return &storage{
			txRunner:  store,
			repos:     store.Repositories(),
			dashboard: store.Dashboard(),
			users:     store.Users(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		txRunner:  postgres.NewTxRunner(pool),
		repos:     postgres.NewRepositories(pool),
		dashboard: postgres.NewDashboardRepository(pool),
		users:     postgres.NewUserRepository(pool),
		ping:      pool.Ping,
		close:     pool.Close,
	}, nil
}
