package database

import (
	"embed"
	"errors"
	"fmt"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	migrateDB "github.com/golang-migrate/migrate/v4/database"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migrateSQLite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-channels-api/internal/config"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// newMigrator собирает экземпляр migrate для драйвера БД поверх открытого *gorm.DB
func newMigrator(db *gorm.DB, driver string) (*migrateV4.Migrate, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("не удалось получить *sql.DB из *gorm.DB: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("не удалось проверить подключение к БД перед миграцией: %w", err)
	}

	var (
		dbDriver migrateDB.Driver
		dir      string
		name     string
	)
	switch driver {
	case config.DriverPostgres:
		dbDriver, err = migratePostgres.WithInstance(sqlDB, &migratePostgres.Config{})
		dir, name = "migrations/postgres", "postgres"
	case config.DriverSQLite, "":
		dbDriver, err = migrateSQLite.WithInstance(sqlDB, &migrateSQLite.Config{})
		dir, name = "migrations/sqlite", "sqlite3"
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("не удалось создать драйвер %s для migrate: %w", name, err)
	}

	source, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть встроенные миграции: %w", err)
	}

	m, err := migrateV4.NewWithInstance("iofs", source, name, dbDriver)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать экземпляр migrate: %w", err)
	}
	return m, nil
}

// MigrateDB применяет встроенные SQL-миграции "вверх".
// Экземпляр migrate не закрывается: Close драйвера закрыл бы общий *sql.DB.
func MigrateDB(db *gorm.DB, driver string) error {
	log.Info().Str("driver", driver).Msg("Запуск применения миграций базы данных")

	m, err := newMigrator(db, driver)
	if err != nil {
		return err
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrateV4.ErrNoChange):
		log.Info().Msg("Изменений в миграциях не найдено, база данных уже актуальна")
	case err != nil:
		return fmt.Errorf("ошибка применения миграций 'up': %w", err)
	default:
		log.Info().Msg("Миграции успешно применены")
	}
	return nil
}

// ResetDB откатывает все миграции и применяет их заново (все данные удаляются)
func ResetDB(db *gorm.DB, driver string) error {
	m, err := newMigrator(db, driver)
	if err != nil {
		return err
	}

	if err := m.Down(); err != nil && !errors.Is(err, migrateV4.ErrNoChange) {
		return fmt.Errorf("ошибка отката миграций: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrateV4.ErrNoChange) {
		return fmt.Errorf("ошибка применения миграций 'up': %w", err)
	}

	log.Warn().Msg("База данных пересоздана с актуальной схемой")
	return nil
}
