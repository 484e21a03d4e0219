package db

import (
	"log"
	"os"

	"gareddit/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the Postgres connection and runs migrations. The handle is
// passed explicitly to handlers and services; there is no package-level
// connection singleton.
func Init() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=gareddit port=5432 sslmode=disable"
	}

	// TranslateError lets callers match unique violations as
	// gorm.ErrDuplicatedKey instead of driver-specific error codes.
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	return conn
}

// Migrate runs auto-migration for all entities. Split out of Init so tests can
// run it against their own connection.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Vote{},
	)
}
