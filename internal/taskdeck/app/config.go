package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is populated from TASKDECK_* environment variables.
type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`         // Environment (dev, staging, prod)
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`  // Log level (debug, info, warn, error)
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // Log format (json, text)
	Port      int    `env:"PORT" envDefault:"8080"`       // HTTP server port

	DatabaseFile  string `env:"DATABASE_FILE" envDefault:"taskdeck.db"`     // Path to SQLite database file
	PepperFile    string `env:"PEPPER_FILE" envDefault:"pepper"`            // Path to the password hashing pepper file
	GuestFallback bool   `env:"GUEST_FALLBACK" envDefault:"false"`          // Serve sessionless requests from the fallback file
	FallbackFile  string `env:"FALLBACK_FILE" envDefault:"data/todos.json"` // Path to the guest fallback JSON file

	SessionSecret string        `env:"SESSION_SECRET"`               // HMAC secret for session tokens; generated when empty
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"` // Session token lifetime

	VoiceTimeout time.Duration `env:"VOICE_TIMEOUT" envDefault:"5s"` // Deadline for a voice capture round trip

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"` // Graceful shutdown timeout
	MaintenanceInterval time.Duration `env:"MAINTENANCE_INTERVAL" envDefault:"1h"`   // Database maintenance interval
}

func LoadConfig() (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: "TASKDECK_"})
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
