package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenDuration: 24 * time.Hour,
			BcryptCost:    bcrypt.DefaultCost,
			LogLevel:      "info",
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimit{
				RequestsPerSecond: 1,
				Burst:             5,
			},
		},
		Workers: Workers{
			TokenCleanupInterval: time.Hour,
			TokenRetention:       7 * 24 * time.Hour,
		},
		Metrics: Metrics{
			Namespace: "registro_horas",
		},
	}
}
