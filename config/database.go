package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"lounge-orders/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// OpenDB connects to the configured database and migrates all models
func OpenDB(cfg DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite", "":
		dialector = sqlite.Open(withForeignKeys(cfg.DSN))
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(os.Stdout),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Driver != "postgres" {
		// single writer; also keeps in-memory databases alive
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// newGormLogger logs slow queries and real errors. Missing rows are reported
// to callers as 404s and are not logged.
func newGormLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  true,
	})
}

// InitDB opens the database into DB or exits
func InitDB(cfg DBConfig) {
	var err error
	DB, err = OpenDB(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	log.Printf("✅ Database connected and migrated (%s)", cfg.Driver)
}

// withForeignKeys turns on SQLite FK enforcement, which is off per connection by default
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
