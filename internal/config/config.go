package config

import (
	"errors"
	"os"
)

// Config holds everything the process reads from the environment. It is
// loaded once in main and passed explicitly to the pieces that need it.
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	WeatherAPIKey string
	WeatherBase   string
	UploadURL     string
	UploadPreset  string
}

// Load reads the environment. JWT_SECRET has no fallback; a token service
// signing with a guessable default is worse than refusing to start.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}
	return &Config{
		Port:          getEnv("PORT", "3000"),
		DBPath:        getEnv("DB_PATH", "atlash.db"),
		JWTSecret:     secret,
		WeatherAPIKey: os.Getenv("WEATHER_API_KEY"),
		WeatherBase:   getEnv("WEATHER_BASE_URL", "https://api.tomorrow.io"),
		UploadURL:     os.Getenv("UPLOAD_URL"),
		UploadPreset:  getEnv("UPLOAD_PRESET", "profile_pics"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
