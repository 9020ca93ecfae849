package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vesseltrack/internal/config"
	"vesseltrack/internal/db"
	"vesseltrack/internal/model"
	"vesseltrack/internal/repository"
)

// seedUser describes a user to ensure exists.
type seedUser struct {
	Username string
	Email    string
	Password string
	Fullname string
	Role     model.Role
	IsStaff  bool
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Fatal("SEED_ADMIN_PASSWORD must be set")
	}

	seeds := []seedUser{
		{
			Username: getEnv("SEED_ADMIN_USERNAME", "admin"),
			Email:    getEnv("SEED_ADMIN_EMAIL", "admin@vesseltrack.local"),
			Password: adminPassword,
			Fullname: "Platform Administrator",
			Role:     model.RoleAdmin,
			IsStaff:  true,
		},
		{
			Username: "operator1",
			Email:    "operator1@vesseltrack.local",
			Password: adminPassword,
			Fullname: "Demo Operator",
			Role:     model.RoleOperator,
		},
		{
			Username: "analyst1",
			Email:    "analyst1@vesseltrack.local",
			Password: adminPassword,
			Fullname: "Demo Analyst",
			Role:     model.RoleAnalyst,
		},
	}

	repo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, seed := range seeds {
		if _, err := repo.FindByUsername(ctx, seed.Username); err == nil {
			log.Printf("User %q already exists, skipping", seed.Username)
			skipped++
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check user %q: %v", seed.Username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password for %q: %v", seed.Username, err)
		}

		user := &model.User{
			Username:     seed.Username,
			Email:        seed.Email,
			PasswordHash: string(hash),
			Fullname:     seed.Fullname,
			Role:         seed.Role,
			IsStaff:      seed.IsStaff,
		}
		if err := repo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %q: %v", seed.Username, err)
		}
		log.Printf("Created user %q (role=%s, staff=%t)", seed.Username, seed.Role, seed.IsStaff)
		created++
	}

	log.Printf("Seed complete: %d created, %d skipped", created, skipped)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
