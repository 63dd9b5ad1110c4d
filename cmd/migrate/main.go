// cmd/migrate/main.go
package main

import (
	"log"

	migrate "github.com/golang-migrate/migrate/v4"
	// The blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"github.com/unclebandit/cms-backend/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	m, err := migrate.New("file://migrations", db.DSN())
	if err != nil {
		log.Fatal("failed to initialize migrations: ", err)
	}

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Println("no new migrations to apply, database is up to date")
			return
		}
		log.Fatal("migrations failed: ", err)
	}

	log.Println("migrations applied")
}
