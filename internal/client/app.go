package client

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/tui"
	"github.com/MKhiriev/go-vault-sync/internal/watcher"
	"github.com/MKhiriev/go-vault-sync/internal/workers"
	"github.com/MKhiriev/go-vault-sync/models"
)

// View is the front end the client runs in the foreground.
type View interface {
	service.ConflictResolver
	Run(ctx context.Context, services *service.ClientServices) error
}

type App struct {
	cfg      *config.ClientConfig
	storages *store.ClientStorages
	services *service.ClientServices
	view     View
	watcher  *watcher.FileWatcher

	logger *logger.Logger
}

var _ Client = (*App)(nil)

func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	view := tui.New(buildInfo, log)

	services, err := service.NewClientServices(ctx, cfg, storages, serverAdapter, view, log)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create client services: %w", err)
	}

	fw, err := watcher.NewFileWatcher(log)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	log.Info().
		Str("vault", services.VaultPath).
		Str("device_id", services.DeviceID).
		Str("server", cfg.Adapter.HTTPAddress).
		Msg("client initialized")

	return &App{
		cfg:      cfg,
		storages: storages,
		services: services,
		view:     view,
		watcher:  fw,
		logger:   log.WithVault(services.VaultPath),
	}, nil
}

// Run shows the view and syncs in the background until the user quits or
// ctx is cancelled. The watcher and storage are closed on return.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// leaving the view ends the whole client
		defer cancel()
		err := a.view.Run(gctx, a.services)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return a.runSync(gctx)
	})

	err := g.Wait()
	a.logger.Info().Err(err).Msg("client stopped")
	return err
}

// runSync binds the vault and runs the sync workers. When the user keeps
// the vault offline the engine stays offline until the next start.
func (a *App) runSync(ctx context.Context) error {
	binding, err := a.services.Binding.Ensure(ctx, a.services.VaultPath, a.cfg.Vault.Name)
	if err != nil {
		a.services.Engine.GoOffline()
		if errors.Is(err, service.ErrEngineOffline) {
			a.logger.Info().Msg("vault kept offline")
		} else {
			a.logger.Err(err).Str("code", string(models.CodeOf(err))).Msg("vault binding failed")
		}
		<-ctx.Done()
		return nil
	}

	a.services.Engine.Bind(binding)
	a.logger.Info().Str("vault_id", binding.VaultID).Str("user_id", binding.BoundUserID).Msg("vault bound")

	// first cycle right after start
	a.services.SyncJob.Trigger()

	return workers.NewWorkers(
		workers.NewSyncJobWorker(a.services.SyncJob, a.cfg.Workers.SyncInterval, a.cfg.Workers.DebounceDelay),
		workers.NewWatchWorker(a.services.VaultPath, a.watcher, a.services.SyncJob, a.logger),
	).Run(ctx)
}

func (a *App) close() {
	// the watch worker only runs on a bound vault
	if err := a.watcher.Stop(); err != nil {
		a.logger.Err(err).Msg("stop file watcher")
	}
	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Msg("close local storage")
	}
}
