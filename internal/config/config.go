package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Registry / browser
	StartURL   string
	UserAgent  string
	Proxy      string
	ChromePath string
	Headless   bool
	NavTimeout time.Duration

	// Pacing
	SlowMo    time.Duration
	PaceDelay time.Duration

	// Batch I/O
	InputPath   string
	OutputPath  string
	SnapshotDir string
	PreferE164  bool
}

// Load builds a Config by combining defaults, an optional .env file,
// environment variables, and CLI flags. Caller should pass the root
// *cobra.Command so persistent flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	// A .env next to the binary is a convenience for operators; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:   DefaultLogLevel,
		JSONLog:    DefaultJSONLog,
		StartURL:   DefaultStartURL,
		UserAgent:  DefaultUserAgent,
		Headless:   DefaultHeadless,
		NavTimeout: DefaultNavTimeout,
		SlowMo:     DefaultSlowMo,
		PaceDelay:  DefaultPaceDelay,
		OutputPath: DefaultOutputPath,
	}

	// Override from environment variables (simple helpers)
	if v := os.Getenv("KBO_START_URL"); v != "" {
		cfg.StartURL = v
	}
	if v := os.Getenv("KBO_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("KBO_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("KBO_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("proxy"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Proxy = s
			}
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.NavTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
