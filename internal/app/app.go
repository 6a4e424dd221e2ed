package app

import (
	"github.com/marco-gallegos/careless-whisper-client/config"
	"github.com/marco-gallegos/careless-whisper-client/internal/domain/recording/usecases"
	"github.com/marco-gallegos/careless-whisper-client/internal/obs"
	"github.com/marco-gallegos/careless-whisper-client/internal/store"
)

// App builds the collaborators commands need, falling back to configured
// values where a command does not override them.
type App struct {
	cfg *config.Config
}

func New(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// OBSClient builds a client for the configured OBS endpoint.
func (a *App) OBSClient() *obs.Client {
	return obs.New(a.cfg.OBSHost, a.cfg.OBSPort, a.cfg.OBSPassword)
}

// Sender builds the upload usecase. Empty arguments fall back to the
// configured API URL and token.
func (a *App) Sender(apiURL, apiToken string) *usecases.Send {
	if apiURL == "" {
		apiURL = a.cfg.APIURL
	}
	if apiToken == "" {
		apiToken = a.cfg.APIToken
	}
	return &usecases.Send{APIURL: apiURL, Token: apiToken}
}

// StorePath resolves the database path for a command. Empty arguments fall
// back to the configured path, then the store default.
func (a *App) StorePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	if a.cfg.DBPath != "" {
		return a.cfg.DBPath
	}
	return store.DefaultPath
}

// OpenStore opens the transcriptions database at the resolved path.
func (a *App) OpenStore(dbPath string) (*store.Store, error) {
	return store.Open(a.StorePath(dbPath))
}
