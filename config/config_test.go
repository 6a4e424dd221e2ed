package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv neutralizes ambient configuration so tests only see what they
// set themselves.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OBS_HOST", "OBS_PORT", "OBS_PASSWORD",
		"RECORD_SEND_API_URL", "RECORD_SEND_API_TOKEN", "RECORD_SEND_DB_PATH",
	} {
		t.Setenv(key, "")
	}
	// Point the config dir somewhere empty.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OBSHost != DefaultOBSHost {
		t.Errorf("host = %q, want %q", cfg.OBSHost, DefaultOBSHost)
	}
	if cfg.OBSPort != DefaultOBSPort {
		t.Errorf("port = %d, want %d", cfg.OBSPort, DefaultOBSPort)
	}
	if cfg.OBSPassword != "" {
		t.Errorf("password = %q, want empty", cfg.OBSPassword)
	}
	if cfg.APIURL != "" || cfg.APIToken != "" {
		t.Errorf("api url/token = %q/%q, want empty", cfg.APIURL, cfg.APIToken)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OBS_HOST", "obs.example.com")
	t.Setenv("OBS_PORT", "4456")
	t.Setenv("OBS_PASSWORD", "hunter2")
	t.Setenv("RECORD_SEND_API_URL", "https://api.example.com/transcribe")
	t.Setenv("RECORD_SEND_API_TOKEN", "tok")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OBSHost != "obs.example.com" {
		t.Errorf("host = %q", cfg.OBSHost)
	}
	if cfg.OBSPort != 4456 {
		t.Errorf("port = %d", cfg.OBSPort)
	}
	if cfg.OBSPassword != "hunter2" {
		t.Errorf("password = %q", cfg.OBSPassword)
	}
	if cfg.APIURL != "https://api.example.com/transcribe" {
		t.Errorf("api url = %q", cfg.APIURL)
	}
	if cfg.APIToken != "tok" {
		t.Errorf("api token = %q", cfg.APIToken)
	}
}

func TestLoadInvalidPortIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("OBS_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OBSPort != DefaultOBSPort {
		t.Errorf("port = %d, want default %d", cfg.OBSPort, DefaultOBSPort)
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "careless-whisper")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `
obs_host = "file-host"
obs_port = 5000
api_url = "https://file.example.com"
db_path = "/var/db/t.db"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OBSHost != "file-host" {
		t.Errorf("host = %q, want file-host", cfg.OBSHost)
	}
	if cfg.OBSPort != 5000 {
		t.Errorf("port = %d, want 5000", cfg.OBSPort)
	}
	if cfg.APIURL != "https://file.example.com" {
		t.Errorf("api url = %q", cfg.APIURL)
	}
	if cfg.DBPath != "/var/db/t.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
}

func TestEnvBeatsConfigFile(t *testing.T) {
	clearEnv(t)

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "careless-whisper")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`obs_host = "file-host"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OBS_HOST", "env-host")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OBSHost != "env-host" {
		t.Errorf("host = %q, want env-host", cfg.OBSHost)
	}
}
