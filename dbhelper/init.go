package dbhelper

import (
	"fmt"
	"strings"
	"time"

	"auraapi/models"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDB opens the wardrobe database. The driver is picked from the DSN
// prefix: postgres:// (or postgresql://), mysql:// and sqlite://.
func SetupDB(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		dialector = postgres.Open(dsn)
	case strings.HasPrefix(dsn, "mysql://"):
		dialector = mysql.Open(strings.TrimPrefix(dsn, "mysql://"))
	case strings.HasPrefix(dsn, "sqlite://"):
		dialector = sqlite.Open(strings.TrimPrefix(dsn, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported database dsn, expected postgres://, mysql:// or sqlite://")
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Minute * 5)
	return db, nil
}

// SetupTestDB opens a private in-memory SQLite database with the wardrobe
// table created.
func SetupTestDB() *gorm.DB {
	db, err := SetupDB(fmt.Sprintf("sqlite://file:%s?mode=memory&cache=shared", uuid.NewString()))
	if err != nil {
		panic(err)
	}
	if err := Migrate(db, &models.WardrobeItem{}); err != nil {
		panic(err)
	}
	return db
}
