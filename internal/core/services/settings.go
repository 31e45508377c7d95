package services

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyStorageBackend      = "storage.backend"
	keyDropboxAppKey       = "dropbox.app_key"
	keyDropboxAppSecret    = "dropbox.app_secret"
	keyDropboxRefreshToken = "dropbox.refresh_token"
	keyDropboxAccessToken  = "dropbox.access_token"
	keyLocalRoot           = "local.root"
	keyScanFolder          = "scan.folder"
	keyScanPollSeconds     = "scan.poll_seconds"
	keyLLMAPIKey           = "llm.api_key"
	keyLLMModel            = "llm.model"
	keyLLMBaseURL          = "llm.base_url"
	keyChatMaxToolRounds   = "chat.max_tool_rounds"
	keyChatMaxTokens       = "chat.max_tokens"
)

// Storage backends.
const (
	StorageDropbox = "dropbox"
	StorageLocal   = "local"
)

// Settings is the resolved application configuration.
type Settings struct {
	StorageBackend string

	DropboxAppKey       string
	DropboxAppSecret    string
	DropboxRefreshToken string
	DropboxAccessToken  string

	LocalRoot  string
	ScanFolder string

	PollInterval time.Duration

	LLMAPIKey  string
	LLMModel   string
	LLMBaseURL string

	MaxToolRounds int
	MaxTokens     int
}

// SettingsService resolves settings from the config store with
// environment variable fallbacks for credentials, so secrets can stay
// out of the config file.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() *Settings {
	return &Settings{
		StorageBackend: s.getString(keyStorageBackend, StorageDropbox),

		DropboxAppKey:       s.getSecret(keyDropboxAppKey, "DROPBOX_APP_KEY"),
		DropboxAppSecret:    s.getSecret(keyDropboxAppSecret, "DROPBOX_APP_SECRET"),
		DropboxRefreshToken: s.getSecret(keyDropboxRefreshToken, "DROPBOX_REFRESH_TOKEN"),
		DropboxAccessToken:  s.getSecret(keyDropboxAccessToken, "DROPBOX_ACCESS_TOKEN"),

		LocalRoot:  s.configStore.GetString(keyLocalRoot),
		ScanFolder: s.configStore.GetString(keyScanFolder),

		PollInterval: s.getPollInterval(),

		LLMAPIKey:  s.getSecret(keyLLMAPIKey, "ANTHROPIC_API_KEY"),
		LLMModel:   s.configStore.GetString(keyLLMModel),
		LLMBaseURL: s.configStore.GetString(keyLLMBaseURL),

		MaxToolRounds: s.getInt(keyChatMaxToolRounds, DefaultMaxToolRounds),
		MaxTokens:     s.getInt(keyChatMaxTokens, DefaultMaxTokens),
	}
}

// SetDropboxCredentials persists the Dropbox credential triple.
func (s *SettingsService) SetDropboxCredentials(appKey, appSecret, refreshToken string) error {
	for key, value := range map[string]string{
		keyDropboxAppKey:       appKey,
		keyDropboxAppSecret:    appSecret,
		keyDropboxRefreshToken: refreshToken,
	} {
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// SetLLMAPIKey persists the model API key.
func (s *SettingsService) SetLLMAPIKey(apiKey string) error {
	if err := s.configStore.Set(keyLLMAPIKey, apiKey); err != nil {
		return fmt.Errorf("save %s: %w", keyLLMAPIKey, err)
	}
	return nil
}

// SetStorageBackend persists the storage backend choice.
func (s *SettingsService) SetStorageBackend(backend string) error {
	if backend != StorageDropbox && backend != StorageLocal {
		return fmt.Errorf("unknown storage backend %q", backend)
	}
	if err := s.configStore.Set(keyStorageBackend, backend); err != nil {
		return fmt.Errorf("save %s: %w", keyStorageBackend, err)
	}
	return nil
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return fallback
}

// getSecret prefers the config file value, falling back to the
// environment so .env.local works out of the box.
func (s *SettingsService) getSecret(key, envVar string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return os.Getenv(envVar)
}

func (s *SettingsService) getPollInterval() time.Duration {
	if secs := s.configStore.GetInt(keyScanPollSeconds); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return DefaultPollInterval
}
