package repositories

import (
	"testing"

	"github.com/uduakgabriel-netizen/disbod/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with gorm's error
// translation enabled, so unique violations surface as
// gorm.ErrDuplicatedKey the same way the postgres driver reports them.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	// A single connection keeps every query on the same in-memory store.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Rating{},
		&models.FeaturedBusiness{},
	); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}
