package tui

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/MKhiriev/go-vault-sync/models"
)

type syncModel struct {
	spinner spinner.Model
	running bool
}

func newSyncModel() syncModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return syncModel{spinner: s}
}

func (m syncModel) View(state models.SyncState) string {
	if !m.running {
		return string(state)
	}
	return m.spinner.View() + " " + string(state)
}
