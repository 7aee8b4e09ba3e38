package tui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/models"
)

func TestResolveBindingConflict_NotStarted(t *testing.T) {
	ui := New(models.AppBuildInfo{}, logger.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	choice, err := ui.ResolveBindingConflict(ctx, models.BindingConflictRequest{RequestID: "r1"})

	assert.Empty(t, choice)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResolveBindingConflict_AfterExit(t *testing.T) {
	ui := New(models.AppBuildInfo{}, logger.Nop())
	close(ui.ready)
	close(ui.done)

	_, err := ui.ResolveBindingConflict(context.Background(), models.BindingConflictRequest{RequestID: "r1"})

	assert.ErrorIs(t, err, ErrNotRunning)
}
