package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/loanpal/loanpal-api/config"
	"github.com/loanpal/loanpal-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@loanpal.app"
	password := "password123"
	name := "Demo Applicant"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name, "").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	// One approved application so the dashboard and recommendations have
	// something to show out of the box. Skipped on re-runs so the seed
	// stays idempotent.
	var seeded bool
	if err := db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM loan_applications WHERE user_id = $1)
	`, id).Scan(&seeded); err != nil {
		log.Fatalf("failed to check seeded applications: %v", err)
	}
	if seeded {
		fmt.Println("application already seeded, skipping")
		return
	}

	var appID string
	err = db.QueryRow(`
		INSERT INTO loan_applications (
			user_id, employer_name, job_title, employment_type,
			monthly_income, amount, duration_months,
			credit_check, total_savings, existing_debt, purpose, status
		)
		VALUES ($1, 'Acme Holdings', 'Operations Manager', 'full-time',
			350000, 1200000, 18,
			true, 150000, false, 'Working capital', 'approved')
		RETURNING id
	`, id).Scan(&appID)
	if err != nil {
		log.Fatalf("failed to seed application: %v", err)
	}
	fmt.Printf("seeded approved application: id=%s\n", appID)
}
