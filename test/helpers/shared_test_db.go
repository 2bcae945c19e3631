package helpers

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andrescamacho/greeter-go/internal/adapters/persistence"
)

// SharedTestDB is the singleton database instance used across all integration tests
var SharedTestDB *gorm.DB

// InitializeSharedTestDB creates and migrates the shared test database
// Called once in TestMain before running any tests
func InitializeSharedTestDB() error {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}

	if err := db.AutoMigrate(&persistence.GreetingModel{}); err != nil {
		return fmt.Errorf("failed to migrate shared test database: %w", err)
	}

	SharedTestDB = db
	return nil
}

// TruncateAllTables clears all data from all tables
// Called before each scenario to ensure test isolation
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	return SharedTestDB.Exec("DELETE FROM greetings").Error
}

// CloseSharedTestDB closes the shared database connection
// Called in TestMain after all tests complete
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}

	sqlDB, err := SharedTestDB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
