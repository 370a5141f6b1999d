package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mfund-labs/mf-backend/config"
	"github.com/mfund-labs/mf-backend/internal/domain/entity"
	repo "github.com/mfund-labs/mf-backend/internal/domain/repository"
	"github.com/mfund-labs/mf-backend/internal/infrastructure/mongodb"
	"github.com/mfund-labs/mf-backend/pkg/helpers"
)

// Seeds a local (email/password) ADMIN account. Existing accounts with the
// same email are left untouched.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	store := mongodb.NewStore(cfg.DatabaseURL, cfg.DatabaseName())
	if err := store.Connect(ctx, cfg.MongoConnectTimeout); err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	if err := store.Migrate(cfg.MigrationsDir, helpers.NewLogger(cfg.AppName, cfg.Env)); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@mfund.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		p, err := helpers.RandomSecret(12)
		if err != nil {
			log.Fatalf("failed to generate password: %v", err)
		}
		password = p
	}

	users := mongodb.NewUserRepository(store)
	if u, err := users.GetByEmail(ctx, email); err == nil {
		fmt.Printf("user already exists: id=%s email=%s role=%s\n", u.ID, u.Email, u.Role)
		return
	} else if !errors.Is(err, repo.ErrNotFound) {
		log.Fatalf("failed to look up user: %v", err)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	now := time.Now().UTC()
	id, err := users.Insert(ctx, &entity.User{
		Email:      email,
		Name:       "Admin",
		Provider:   entity.ProviderLocal,
		Password:   hash,
		Role:       entity.RoleAdmin,
		IsVerified: true,
		KYCStatus:  entity.KYCVerified,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)
}
