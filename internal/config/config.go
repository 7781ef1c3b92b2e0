package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// EnvConfigPath names the TOML file to load when no path is passed
	EnvConfigPath = "BW_CONFIG"

	// DotEnvFile is loaded from the working directory when present
	DotEnvFile = ".env"
)

// Config holds server settings. Precedence, lowest first: defaults, TOML file, environment.
type Config struct {
	Addr             string   `toml:"addr"              env:"BW_ADDR"`
	StaticDir        string   `toml:"static_dir"        env:"BW_STATIC_DIR"`
	PublicURL        string   `toml:"public_url"        env:"BW_PUBLIC_URL"`
	LogLevel         string   `toml:"log_level"         env:"BW_LOG_LEVEL"`
	ClientBuffer     int      `toml:"client_buffer"     env:"BW_CLIENT_BUFFER"`
	DefaultCarryOver bool     `toml:"default_carryover" env:"BW_DEFAULT_CARRYOVER"`
	AllowedOrigins   []string `toml:"allowed_origins"   env:"BW_ALLOWED_ORIGINS" envSeparator:","`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Addr:             ":3000",
		StaticDir:        "static",
		LogLevel:         "info",
		ClientBuffer:     32,
		DefaultCarryOver: true,
	}
}

// Load builds the configuration. path may be empty, in which case BW_CONFIG is consulted.
func Load(path string) (Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load %s: %w", DotEnvFile, err)
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := loadToml(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadToml(path string, out *Config) error {
	md, err := toml.DecodeFile(path, out)
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config: unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate rejects settings the server cannot run with
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("config: addr is required")
	}
	if cfg.ClientBuffer <= 0 {
		return fmt.Errorf("config: client_buffer must be positive, got %d", cfg.ClientBuffer)
	}
	if cfg.PublicURL != "" && !strings.HasPrefix(cfg.PublicURL, "http://") && !strings.HasPrefix(cfg.PublicURL, "https://") {
		return fmt.Errorf("config: public_url must be an http(s) URL, got %q", cfg.PublicURL)
	}
	return nil
}
