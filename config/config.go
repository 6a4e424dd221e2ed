package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Defaults for the OBS websocket server.
const (
	DefaultOBSHost = "localhost"
	DefaultOBSPort = 4455
)

type Config struct {
	OBSHost     string
	OBSPort     int
	OBSPassword string
	APIURL      string
	APIToken    string
	DBPath      string // empty means the store's default next to the program
}

type fileConfig struct {
	OBSHost     string `toml:"obs_host"`
	OBSPort     int    `toml:"obs_port"`
	OBSPassword string `toml:"obs_password"`
	APIURL      string `toml:"api_url"`
	APIToken    string `toml:"api_token"`
	DBPath      string `toml:"db_path"`
}

// Load builds the configuration once at the program boundary. Precedence,
// lowest to highest: defaults, config.toml, .env in the working directory,
// process environment. Command flags override on top of this.
func Load() (*Config, error) {
	// .env values become process env unless already set, so real env vars
	// still win in applyEnvOverrides.
	_ = godotenv.Load()

	cfg := &Config{
		OBSHost: DefaultOBSHost,
		OBSPort: DefaultOBSPort,
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.OBSHost != "" {
				cfg.OBSHost = fc.OBSHost
			}
			if fc.OBSPort != 0 {
				cfg.OBSPort = fc.OBSPort
			}
			if fc.OBSPassword != "" {
				cfg.OBSPassword = fc.OBSPassword
			}
			cfg.APIURL = fc.APIURL
			cfg.APIToken = fc.APIToken
			if fc.DBPath != "" {
				cfg.DBPath = expandTilde(fc.DBPath)
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OBS_HOST"); v != "" {
		cfg.OBSHost = v
	}
	if v := os.Getenv("OBS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.OBSPort = port
		}
	}
	if v := os.Getenv("OBS_PASSWORD"); v != "" {
		cfg.OBSPassword = v
	}
	if v := os.Getenv("RECORD_SEND_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("RECORD_SEND_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("RECORD_SEND_DB_PATH"); v != "" {
		cfg.DBPath = expandTilde(v)
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "careless-whisper")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "careless-whisper")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
