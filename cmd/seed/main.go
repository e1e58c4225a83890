package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pageza/recipe-tracker/backend/config"
	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/store"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

const defaultPassword = "testpassword123"

var testUsers = []struct {
	name  string
	email string
}{
	{"John Doe", "john.doe@example.com"},
	{"Jane Smith", "jane.smith@example.com"},
	{"Test User", "test@example.com"},
}

// Common pantry staples, ids as the food API knows them.
var pantry = []types.AddIngredientRequest{
	{ID: 1123, Name: "egg", Image: "egg.png"},
	{ID: 20081, Name: "wheat flour", Image: "flour.png"},
	{ID: 1077, Name: "milk", Image: "milk.png"},
	{ID: 9003, Name: "apple", Image: "apple.jpg"},
	{ID: 11282, Name: "onion", Image: "brown-onion.png"},
}

func main() {
	password := flag.String("password", defaultPassword, "Password for every seeded user")
	flag.Parse()

	ctx := context.Background()
	log := logging.New(false)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error(ctx, "load config", "error", err)
		os.Exit(1)
	}
	db, err := database.New(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "open database", "error", err)
		os.Exit(1)
	}

	st := store.New(db)
	auth := service.NewAuthService(st, cfg.JWTSecret, nil, log)
	ingredients := service.NewIngredientService(st, nil, log)

	for _, u := range testUsers {
		user, _, err := auth.Register(ctx, u.email, *password, u.name)
		if errors.Is(err, service.ErrUserExists) {
			log.Info(ctx, "user already exists, skipping", "email", u.email)
			continue
		}
		if err != nil {
			log.Error(ctx, "create user", "email", u.email, "error", err)
			continue
		}
		for i := range pantry {
			req := pantry[i]
			if _, err := ingredients.AddFromSearch(ctx, user.ID, &req); err != nil {
				log.Error(ctx, "add ingredient", "email", u.email, "ingredient", req.Name, "error", err)
			}
		}
		log.Info(ctx, "created user", "email", u.email, "pantry", len(pantry))
	}

	fmt.Println("Test credentials:")
	for _, u := range testUsers {
		fmt.Printf("  %s / %s\n", u.email, *password)
	}
}
