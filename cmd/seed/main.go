// Seeds the catalog with a few sample listings so the storefront has
// something to show during development. Safe to run repeatedly; it does
// nothing once the catalog is non-empty.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"bikemarket/internal/config"
	"bikemarket/internal/database"
	"bikemarket/internal/domain/bike"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if cfg.Store != config.StoreMongo {
		slog.Error("seeding requires the mongo store", "store", cfg.Store)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("connect mongo", "err", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := bike.NewMongoRepository(client.Database(cfg.MongoDB))

	existing, err := repo.List(ctx)
	if err != nil {
		slog.Error("list bikes", "err", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		slog.Info("catalog already seeded", "bikes", len(existing))
		return
	}

	seed := []bike.Bike{
		{Name: "Trail Blazer 29", Price: 899, Description: "Hardtail trail bike with a 29\" wheelset and hydraulic disc brakes.", Image: "/uploads/seed-trail-blazer.jpg"},
		{Name: "City Cruiser", Price: 449, Description: "Upright commuter with fenders, rack mounts and puncture-resistant tires.", Image: "/uploads/seed-city-cruiser.jpg"},
		{Name: "Gravel Rider Pro", Price: 1599, Description: "Carbon gravel frame, 1x drivetrain, clearance for 45mm tires.", Image: "/uploads/seed-gravel-rider.jpg"},
	}
	for i := range seed {
		if _, err := repo.Create(ctx, &seed[i]); err != nil {
			slog.Error("seed bike", "name", seed[i].Name, "err", err)
			os.Exit(1)
		}
	}
	slog.Info("catalog seeded", "bikes", len(seed))
}
