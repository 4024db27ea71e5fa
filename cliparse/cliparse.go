package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	HostKeySalt   string
	EventSlugSalt string
	EditWindow    time.Duration
	BaseURL       string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var editWindowSecs int

	fs := flag.NewFlagSet("ama-tool", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Base URL for share links")
	fs.IntVar(&editWindowSecs, "edit-window", 0, "Question edit window in seconds")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.HostKeySalt, "host-salt", "", "Host key salt (prefer env)")
	fs.StringVar(&cfg.EventSlugSalt, "slug-salt", "", "Event slug salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if editWindowSecs == 0 {
		if windowStr := os.Getenv("EDIT_WINDOW_SECONDS"); windowStr != "" {
			secs, err := strconv.Atoi(windowStr)
			if err != nil || secs < 0 {
				return Config{}, errors.New("invalid EDIT_WINDOW_SECONDS env variable")
			}
			editWindowSecs = secs
		} else {
			editWindowSecs = 120 // default
		}
	}
	cfg.EditWindow = time.Duration(editWindowSecs) * time.Second

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("BASE_URL")
		if cfg.BaseURL == "" {
			cfg.BaseURL = "https://ama.example.com"
		}
	}

	// Secrets - MUST be provided
	if cfg.HostKeySalt == "" {
		cfg.HostKeySalt = os.Getenv("HOST_KEY_SALT")
	}
	if cfg.HostKeySalt == "" {
		return Config{}, errors.New("HOST_KEY_SALT required")
	}

	if cfg.EventSlugSalt == "" {
		cfg.EventSlugSalt = os.Getenv("EVENT_SLUG_SALT")
	}
	if cfg.EventSlugSalt == "" {
		return Config{}, errors.New("EVENT_SLUG_SALT required")
	}

	return cfg, nil
}
