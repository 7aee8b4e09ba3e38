// Package tui is the terminal front end of the sync client: a live status
// view of the vault plus the modal that asks the user how to handle a vault
// bound to another account.
package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/models"
)

var (
	ErrUserQuit   = errors.New("user quit")
	ErrNotRunning = errors.New("status view is not running")
)

// TUI owns the bubbletea program. It also implements
// [service.ConflictResolver], so the binding service can ask the user
// through the running view.
type TUI struct {
	buildInfo models.AppBuildInfo

	readyOnce sync.Once
	ready     chan struct{}
	done      chan struct{}
	program   *tea.Program

	logger *logger.Logger
}

var _ service.ConflictResolver = (*TUI)(nil)

func New(buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		buildInfo: buildInfo,
		ready:     make(chan struct{}),
		done:      make(chan struct{}),
		logger:    log,
	}
}

// Run shows the status view until the user quits or ctx is cancelled.
// It returns ErrUserQuit when the user asked to exit.
func (t *TUI) Run(ctx context.Context, services *service.ClientServices) error {
	model := newAppModel(ctx, services.Engine, services.SyncJob, services.Status, services.VaultPath, t.buildInfo)
	t.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := services.Status.Subscribe(func(models.SyncStatusSnapshot) {
		t.program.Send(statusChangedMsg{})
	})
	defer unsubscribe()
	defer close(t.done)

	t.readyOnce.Do(func() { close(t.ready) })

	finalModel, err := t.program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if result, ok := finalModel.(appModel); ok && result.quitByUser {
		return ErrUserQuit
	}
	return nil
}

// ResolveBindingConflict shows the binding prompt and waits for the answer.
// If ctx ends first the prompt is withdrawn and ctx's error is returned.
func (t *TUI) ResolveBindingConflict(ctx context.Context, req models.BindingConflictRequest) (models.BindingConflictChoice, error) {
	select {
	case <-t.ready:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case <-t.done:
		return "", ErrNotRunning
	default:
	}

	reply := make(chan models.BindingConflictChoice, 1)
	go t.program.Send(bindingConflictMsg{req: req, reply: reply})

	select {
	case choice := <-reply:
		t.logger.Info().
			Str("request_id", req.RequestID).
			Str("vault", req.VaultPath).
			Str("choice", string(choice)).
			Msg("binding conflict answered")
		return choice, nil
	case <-t.done:
		return "", ErrNotRunning
	case <-ctx.Done():
		go t.program.Send(bindingCancelledMsg{requestID: req.RequestID})
		return "", ctx.Err()
	}
}
