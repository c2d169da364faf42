package main

import (
	"log"
	"net/http"
	"time"

	"atlash/internal/config"
	"atlash/internal/db"
	"atlash/internal/server"
	"atlash/internal/token"
	"atlash/internal/upload"
	"atlash/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	srv := server.New(
		database,
		token.NewService(cfg.JWTSecret),
		weather.NewClient(cfg.WeatherBase, cfg.WeatherAPIKey),
		upload.NewClient(cfg.UploadURL, cfg.UploadPreset),
	)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Printf("listening on :%s", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
