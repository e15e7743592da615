package main

import (
	"context"
	"errors"
	"log"
	"os"

	"processcraft/internal/db"
	"processcraft/internal/repository"
	"processcraft/internal/service"
)

// Seeds a demo account for local development and prints a ready-to-use token.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	service.InitJWT(jwtSecret)

	pool := db.Connect(dsn)
	defer pool.Close()

	users := repository.NewUserRepository(pool)
	auth := service.NewAuthService(users, 0)
	ctx := context.Background()

	const email = "demo@processcraft.local"
	const password = "demo-password"

	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Fatalf("lookup user: %v", err)
		}
		user, err = auth.Register(ctx, "Demo User", email, password)
		if err != nil {
			log.Fatalf("create user failed: %v", err)
		}
		log.Printf("user created id=%s\n", user.ID)
	} else {
		log.Printf("user already exists id=%s\n", user.ID)
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("email=%s password=%s\n", email, password)
	log.Printf("token=%s\n", token)
}
