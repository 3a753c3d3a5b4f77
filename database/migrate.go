package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"kalasangam_backend/internal/logger"
	"kalasangam_backend/internal/models"
)

// Options описывает подключение к хранилищу
type Options struct {
	Driver   string // postgres, mysql, sqlite
	DSN      string
	Replicas []string
	LogSQL   bool
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", "postgres", "postgresql":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite", "sqlite3":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}

// Connect открывает *gorm.DB и подключает реплики для чтения, если они заданы
func Connect(opts Options) (*gorm.DB, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("database url is empty")
	}

	primary, err := dialector(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if opts.LogSQL {
		level = gormlogger.Info
	}

	db, err := gorm.Open(primary, &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(level),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	if len(opts.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(opts.Replicas))
		for _, dsn := range opts.Replicas {
			d, err := dialector(opts.Driver, dsn)
			if err != nil {
				return nil, err
			}
			replicas = append(replicas, d)
		}
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).SetConnMaxIdleTime(5 * time.Minute))
		if err != nil {
			return nil, fmt.Errorf("failed to register read replicas: %w", err)
		}
		logger.Info("Read replicas registered", "count", len(replicas))
	}

	if opts.Driver == "sqlite" || opts.Driver == "sqlite3" {
		// sqlite держит одну запись за раз
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("AutoMigrate completed", "models", len(models.All()))
	return nil
}

// OpenMemory поднимает чистую sqlite-базу в памяти с примененными миграциями.
// Используется тестами и локальным запуском без внешней базы.
func OpenMemory() (*gorm.DB, error) {
	db, err := Connect(Options{Driver: "sqlite", DSN: "file::memory:"})
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
