package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator aplica as migrações do esquema (embutidas no binário ou de um diretório).
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator abre o migrate para a URL do banco. path vazio usa as migrações embutidas.
func NewMigrator(databaseURL, path string) (*Migrator, error) {
	var (
		m   *migrate.Migrate
		err error
	)
	if path != "" {
		m, err = migrate.New("file://"+path, databaseURL)
	} else {
		src, srcErr := iofs.New(migrationsFS, "migrations")
		if srcErr != nil {
			return nil, fmt.Errorf("migrações embutidas: %w", srcErr)
		}
		m, err = migrate.NewWithSourceInstance("iofs", src, databaseURL)
	}
	if err != nil {
		return nil, fmt.Errorf("criar migrate: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up aplica todas as migrações pendentes. Sem mudanças não é erro.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migrações: %w", err)
	}
	return nil
}

// Down desfaz steps migrações; steps <= 0 desfaz todas.
func (mg *Migrator) Down(steps int) error {
	var err error
	if steps > 0 {
		err = mg.m.Steps(-steps)
	} else {
		err = mg.m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("reverter migrações: %w", err)
	}
	return nil
}

// Version devolve a versão atual; sem migrações aplicadas devolve 0.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("versão das migrações: %w", err)
	}
	return v, dirty, nil
}

// Close libera as conexões do migrate.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}
