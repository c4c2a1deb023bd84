package main

import (
	"log"
	"os"

	"propdesk-be/internal/model"
	"propdesk-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. AutoMigrate. Documents first, the association foreign key needs the table.
	log.Println("Running AutoMigrate...")

	models := []interface{}{
		&model.Document{},
		&model.Property{},
		&model.Person{},
		&model.Tag{},
		&model.DocumentAssociation{},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Fatalf("Error: AutoMigrate failed for %T: %v", m, err)
		}
	}

	log.Println("Migration completed successfully")
}
