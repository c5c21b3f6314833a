package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"demandlens/adapters/excel"
	"demandlens/adapters/memory"
	"demandlens/adapters/postgres"
	"demandlens/app"
	"demandlens/internal/api"
	"demandlens/internal/config"
	"demandlens/internal/profiling"
	"demandlens/ports"
	"demandlens/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	repo, cleanup, err := buildRepository(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer cleanup()

	policy := profiling.PolicyFromName(appConfig.Profiling.ReadinessPolicy)
	log.Printf("Readiness policy: %s (threshold %.0f%%, minimum %d rows)",
		policy.Name, policy.Threshold, policy.MinimumRows)

	profiles := app.NewProfileService(policy, repo)
	forecasts := app.NewForecastService()

	if appConfig.API.Enabled {
		forecastAPI := api.NewForecastAPI(forecasts)
		apiAddr := fmt.Sprintf(":%s", appConfig.API.Port)
		go func() {
			log.Printf("Starting DemandLens forecast API on http://localhost%s", apiAddr)
			if err := http.ListenAndServe(apiAddr, forecastAPI.Router()); err != nil {
				log.Fatalf("Forecast API failed: %v", err)
			}
		}()
	}

	server := ui.NewServer(profiles, forecasts, excel.NewDataReader(), appConfig.Profiling.MaxUploadBytes, appConfig.Server.GinMode)
	if err := server.Start(fmt.Sprintf(":%s", appConfig.Server.Port)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// buildRepository connects to postgres when DATABASE_URL is set, otherwise
// falls back to the in-memory store.
func buildRepository(appConfig *config.Config) (ports.DatasetRepository, func(), error) {
	if appConfig.Database.URL == "" {
		log.Println("DATABASE_URL not set, using in-memory dataset store")
		return memory.NewDatasetRepository(), func() {}, nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, nil, err
	}

	log.Println("Connected to postgres dataset store")
	return postgres.NewDatasetRepository(db), func() { db.Close() }, nil
}
