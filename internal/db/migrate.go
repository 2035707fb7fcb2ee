package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ibizabroker/520-project/internal/models"
)

// Migrate creates or updates the schema from the model definitions.
// It opens a short-lived GORM connection, runs AutoMigrate, and
// closes it; request traffic goes through the pgx pool instead.
func Migrate(ctx context.Context, databaseURL string) error {
	gormDB, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open migration db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("get migration sql db: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctxPing); err != nil {
		return fmt.Errorf("ping migration db: %w", err)
	}

	if err := gormDB.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Post{},
		&models.Bookmark{},
		&models.Comment{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
