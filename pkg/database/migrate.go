package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 将内嵌的实习平台 Schema 迁移应用到当前数据库。
// 迁移是幂等的：已是最新版本时直接返回；dirty 状态说明上次迁移
// 中途失败，需要人工介入修复后重启。
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("读取内嵌迁移脚本失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("初始化 postgres 迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("构建迁移实例失败: %w", err)
	}

	before, _, verr := m.Version()
	if errors.Is(verr, migrate.ErrNilVersion) {
		logger.Info("数据库为空，开始初始化 Schema")
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("应用迁移失败: %w", upErr)
	}

	version, dirty, _ := m.Version()
	switch {
	case dirty:
		logger.Warn("迁移处于 dirty 状态，需人工修复后重启",
			zap.Uint("version", version))
	case errors.Is(upErr, migrate.ErrNoChange):
		logger.Info("数据库 Schema 已是最新", zap.Uint("version", version))
	default:
		logger.Info("数据库迁移完成",
			zap.Uint("from", before),
			zap.Uint("to", version))
	}
	return nil
}
