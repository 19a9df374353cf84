package migrator

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

var (
	// ErrInit возвращается, если не удалось создать мигратор
	ErrInit = errors.New("migrator: failed to initialize")

	// ErrMigrate возвращается при ошибке применения миграций
	ErrMigrate = errors.New("migrator: failed to apply migrations")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator применяет встроенные SQL-миграции к PostgreSQL
type Migrator struct {
	m      *migrate.Migrate
	logger Logger
}

// New создает мигратор поверх открытого соединения
// Закрытие мигратора закрывает и переданное соединение
func New(db *sql.DB, source fs.FS, logger Logger) (*Migrator, error) {
	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("%w: database driver: %v", ErrInit, err)
	}

	srcDriver, err := iofs.New(source, ".")
	if err != nil {
		return nil, fmt.Errorf("%w: source driver: %v", ErrInit, err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	return &Migrator{m: m, logger: logger}, nil
}

// Up применяет все новые миграции. Отсутствие изменений не считается ошибкой
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info("Migrations: schema is up to date")
			return nil
		}
		return fmt.Errorf("%w: up: %v", ErrMigrate, err)
	}

	version, _, _ := m.m.Version()
	m.logger.Info("Migrations: applied up to version %d", version)
	return nil
}

// Down откатывает одну последнюю миграцию
func (m *Migrator) Down() error {
	if err := m.m.Steps(-1); err != nil {
		return fmt.Errorf("%w: down: %v", ErrMigrate, err)
	}
	return nil
}

// Force выставляет версию схемы без применения миграций (после ручного исправления)
func (m *Migrator) Force(version int) error {
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("%w: force %d: %v", ErrMigrate, version, err)
	}
	return nil
}

// Version возвращает текущую версию схемы и флаг незавершенной миграции
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Close освобождает ресурсы мигратора
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}
