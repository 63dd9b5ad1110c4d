// cmd/seeder/main.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/unclebandit/cms-backend/internal/db"
)

// Default admin credentials, change in production.
const (
	adminName     = "Admin"
	adminEmail    = "admin@cms.com"
	adminPassword = "Admin@123"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	pool, err := db.Connect()
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer pool.Close()

	seedFiles := []string{
		"seed/states_cities.sql",
	}

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("failed to read %s: %v", file, err)
		}

		if _, err := pool.Exec(string(content)); err != nil {
			log.Fatalf("failed to execute %s: %v", file, err)
		}
		fmt.Printf("seeded: %s\n", file)
	}

	if err := seedAdmin(pool); err != nil {
		log.Fatal("failed to seed admin user: ", err)
	}

	fmt.Println("database seeding completed successfully")
}

// seedAdmin creates the default admin user, skipping when the email already
// exists so the seeder stays safe to run repeatedly.
func seedAdmin(pool *sql.DB) error {
	var existingID int
	err := pool.QueryRow(
		`SELECT id FROM users WHERE LOWER(email) = LOWER($1) LIMIT 1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		fmt.Printf("admin user '%s' already exists, skipping\n", adminEmail)
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = pool.Exec(
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3)`,
		adminName, adminEmail, string(hash),
	)
	if err != nil {
		return err
	}

	fmt.Printf("admin user created: %s (change the default password in production)\n", adminEmail)
	return nil
}
