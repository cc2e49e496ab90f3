package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hmchef/hmchef/config"
	"github.com/hmchef/hmchef/internal/models"
)

// New opens the database the config selects: postgres for real
// deployments, sqlite for tests and single-box setups.
func New(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
		)
		log.Printf("connecting to postgres at %s:%s as %s", cfg.DBHost, cfg.DBPort, cfg.DBUser)
		return gorm.Open(postgres.Open(dsn), gormCfg)
	case "sqlite":
		log.Printf("opening sqlite database at %s", cfg.DBPath)
		return gorm.Open(sqlite.Open(cfg.DBPath), gormCfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Recipe{})
}
