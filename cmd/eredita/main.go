package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/eredita-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/eredita-cli/internal/adapters/driven/llm/anthropic"
	"github.com/custodia-labs/eredita-cli/internal/adapters/driven/storage/remote"
	"github.com/custodia-labs/eredita-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/eredita-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/eredita-cli/internal/connectors/dropbox"
	"github.com/custodia-labs/eredita-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
	"github.com/custodia-labs/eredita-cli/internal/core/services"
	"github.com/custodia-labs/eredita-cli/internal/logger"
	"github.com/custodia-labs/eredita-cli/internal/normalisers"
	"github.com/custodia-labs/eredita-cli/internal/normalisers/docx"
	"github.com/custodia-labs/eredita-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/eredita-cli/internal/normalisers/plaintext"
	"github.com/custodia-labs/eredita-cli/internal/normalisers/xlsx"
	"github.com/custodia-labs/eredita-cli/internal/postprocessors"
)

func main() {
	loadDotEnv()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadDotEnv loads .env.local and .env without overriding variables
// already set in the environment.
func loadDotEnv() {
	for _, name := range []string{".env.local", ".env"} {
		values, err := godotenv.Read(name)
		if err != nil {
			continue
		}
		for k, v := range values {
			if _, exists := os.LookupEnv(k); !exists {
				os.Setenv(k, v) //nolint:errcheck
			}
		}
	}
}

func run() error {
	ctx := context.Background()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings := settingsService.Get()

	store, watcher := buildStore(ctx, settings)

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(docx.New())
	registry.Register(xlsx.New())
	if pdf.Available() {
		registry.Register(pdf.New())
	} else {
		logger.Debug("%s", pdf.InstallInstructions())
	}

	scanner := services.NewScanner(store, registry, buildPipeline(), settings.ScanFolder)
	holder := services.NewSnapshotHolder()
	poller := services.NewPoller(scanner, holder, watcher, settings.PollInterval)

	session := services.NewSession(buildCollectionStore(settings, store))
	session.Load(ctx)

	dispatcher := services.NewToolDispatcher(session)
	chat := services.NewChat(buildLLM(settings), session, holder, dispatcher, services.ChatConfig{
		MaxToolRounds: settings.MaxToolRounds,
		MaxTokens:     settings.MaxTokens,
	})

	// Seed the snapshot so the report surfaces have data before the
	// first poll tick.
	if store != nil {
		if snapshot, err := scanner.Scan(ctx); err == nil {
			holder.Replace(snapshot)
		}
	}

	cli.SetServices(cli.Services{
		Chat:      chat,
		Scan:      scanner,
		Snapshots: holder,
		Session:   session,
		Settings:  settingsService,
		Store:     store,
		Poller:    poller,
	})

	return cli.Execute()
}

// buildPipeline assembles the default text post-processing pipeline.
func buildPipeline() *postprocessors.Pipeline {
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)

	pipeline := postprocessors.NewPipeline()
	for _, name := range registry.Names() {
		processor, err := registry.Build(name, nil)
		if err != nil {
			logger.Warn("Skipping processor %s: %v", name, err)
			continue
		}
		pipeline.Add(processor)
	}
	return pipeline
}

// buildStore creates the document store for the configured backend.
// An unconfigured or unreachable store returns nil; the commands report
// the missing dependency themselves.
func buildStore(ctx context.Context, settings *services.Settings) (driven.DocumentStore, driven.ChangeWatcher) {
	switch settings.StorageBackend {
	case services.StorageLocal:
		fs, err := filesystem.New(settings.LocalRoot)
		if err != nil {
			logger.Warn("Local store unavailable at %q: %v", settings.LocalRoot, err)
			return nil, nil
		}
		return fs, fs

	default:
		dbx, err := dropbox.New(ctx, dropbox.Config{
			AppKey:       settings.DropboxAppKey,
			AppSecret:    settings.DropboxAppSecret,
			RefreshToken: settings.DropboxRefreshToken,
			AccessToken:  settings.DropboxAccessToken,
		})
		if err != nil {
			logger.Warn("Dropbox store unavailable: %v", err)
			return nil, nil
		}
		return dbx, nil
	}
}

// buildCollectionStore picks where the session collections persist:
// alongside the documents when the remote store is up, otherwise a
// local SQLite database.
func buildCollectionStore(settings *services.Settings, store driven.DocumentStore) driven.CollectionStore {
	if settings.StorageBackend != services.StorageLocal && store != nil {
		return remote.New(store)
	}

	sqliteStore, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("Collections will not persist: %v", err)
		return nil
	}
	return sqliteStore
}

// buildLLM creates the model client, or nil when no key is configured.
// Chat degrades to a visible "not configured" state without a model.
func buildLLM(settings *services.Settings) driven.LLMService {
	if settings.LLMAPIKey == "" {
		return nil
	}

	llm, err := anthropic.NewLLMService(anthropic.Config{
		APIKey:  settings.LLMAPIKey,
		Model:   settings.LLMModel,
		BaseURL: settings.LLMBaseURL,
	})
	if err != nil {
		logger.Warn("Model unavailable: %v", err)
		return nil
	}
	return llm
}
