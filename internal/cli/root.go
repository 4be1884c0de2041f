// Package cli implementa o agrotrack-admin: migrações, reconciliação dos totais e cadastro de usuários.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/application/ports"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/domain/repository"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/internal/infrastructure/postgres"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/pkg/config"
	"github.com/MatheusVRibeiro/AgroTrack-Backend/pkg/logger"
)

// RootOptions flags globais.
type RootOptions struct {
	EnvFile     string
	DatabaseURL string
	Verbose     bool

	// preenchidos no PersistentPreRunE
	Config *config.Config
	Log    *logger.Logger
}

// Storage o que os comandos usam do banco.
type Storage struct {
	TxRunner ports.TxRunner
	Users    repository.UserRepository
	Close    func()
}

// Deps pontos de troca para os testes.
type Deps struct {
	OpenStorage  func(ctx context.Context, cfg *config.Config) (*Storage, error)
	OpenMigrator func(cfg *config.Config) (Migrator, error)
}

// Migrator operações de migração usadas pelo comando migrate.
type Migrator interface {
	Up() error
	Down(steps int) error
	Version() (uint, bool, error)
	Close() error
}

// DefaultDeps abre o PostgreSQL configurado.
func DefaultDeps() Deps {
	return Deps{
		OpenStorage: func(ctx context.Context, cfg *config.Config) (*Storage, error) {
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return nil, err
			}
			return &Storage{
				TxRunner: postgres.NewTxRunner(pool),
				Users:    postgres.NewUserRepository(pool),
				Close:    pool.Close,
			}, nil
		},
		OpenMigrator: func(cfg *config.Config) (Migrator, error) {
			return postgres.NewMigrator(cfg.DB.ConnectionString(), cfg.App.MigrationsPath)
		},
	}
}

// NewRootCommand cria o comando raiz do agrotrack-admin.
func NewRootCommand(deps Deps) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "agrotrack-admin",
		Short: "Administração do AgroTrack",
		Long:  "Ferramentas de manutenção do AgroTrack: migrações do banco, reconciliação dos totais derivados e cadastro de usuários.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "arquivo .env carregado antes da configuração")
	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database-url", "", "sobrescreve DATABASE_URL")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log em nível debug")

	cmd.AddCommand(NewMigrateCommand(opts, deps))
	cmd.AddCommand(NewReconcileCommand(opts, deps))
	cmd.AddCommand(NewCreateUserCommand(opts, deps))

	return cmd
}

// load lê o .env (opcional quando ausente), a configuração e cria o logger.
func (o *RootOptions) load() error {
	if o.EnvFile != "" {
		if err := godotenv.Load(o.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("carregar %s: %w", o.EnvFile, err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("carregar configuração: %w", err)
	}
	if o.DatabaseURL != "" {
		cfg.DB.DatabaseURL = o.DatabaseURL
	}
	level := cfg.App.LogLevel
	if o.Verbose {
		level = "debug"
	}
	o.Config = cfg
	o.Log = logger.New(logger.Config{Env: cfg.App.Env, Level: level})
	return nil
}
