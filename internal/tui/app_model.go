package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-vault-sync/internal/app"
	"github.com/MKhiriev/go-vault-sync/models"
)

type conflictResolver interface {
	ResolveConflict(ctx context.Context, path string, resolution models.ConflictResolution) error
}

type syncTrigger interface {
	Trigger()
}

type statusSource interface {
	Last() models.SyncStatusSnapshot
}

// copyToClipboard is swapped in tests; the real clipboard needs a display.
var copyToClipboard = clipboard.WriteAll

type appModel struct {
	ctx       context.Context
	engine    conflictResolver
	trigger   syncTrigger
	status    statusSource
	vaultPath string
	buildInfo models.AppBuildInfo

	snapshot   models.SyncStatusSnapshot
	cursor     int
	syncScreen syncModel
	statusLine string

	prompt        *bindingPrompt
	showError     bool
	errorOverlay  errorOverlayModel
	showBuildInfo bool
	quitByUser    bool
}

func newAppModel(ctx context.Context, engine conflictResolver, trigger syncTrigger, status statusSource, vaultPath string, buildInfo models.AppBuildInfo) appModel {
	m := appModel{
		ctx:        ctx,
		engine:     engine,
		trigger:    trigger,
		status:     status,
		vaultPath:  vaultPath,
		buildInfo:  buildInfo,
		syncScreen: newSyncModel(),
	}
	m.snapshot = status.Last()
	return m
}

func (m appModel) Init() tea.Cmd {
	return m.syncScreen.spinner.Tick
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case statusChangedMsg:
		m.snapshot = m.status.Last()
		m.syncScreen.running = m.snapshot.State.Busy()
		if m.cursor >= len(m.snapshot.Conflicts) {
			m.cursor = max(len(m.snapshot.Conflicts)-1, 0)
		}
		return m, nil

	case bindingConflictMsg:
		// a newer request supersedes an unanswered one
		if m.prompt != nil {
			m.prompt.answer(models.StayOffline)
		}
		m.prompt = &bindingPrompt{req: msg.req, reply: msg.reply}
		return m, nil

	case bindingCancelledMsg:
		if m.prompt != nil && m.prompt.req.RequestID == msg.requestID {
			m.prompt = nil
		}
		return m, nil

	case conflictResolvedMsg:
		if msg.err != nil {
			m.showError = true
			m.errorOverlay.message = fmt.Sprintf("%s: %s", msg.path, humanizeError(msg.err))
			return m, nil
		}
		m.statusLine = fmt.Sprintf("%s resolved (%s)", msg.path, msg.resolution)
		return m, cmdClearStatus()

	case copiedMsg:
		if msg.err != nil {
			m.showError = true
			m.errorOverlay.message = msg.err.Error()
			return m, nil
		}
		m.statusLine = "copied " + msg.path
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.statusLine = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.syncScreen.spinner, cmd = m.syncScreen.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != nil {
		switch {
		case msg.String() == "ctrl+c":
			m.prompt.answer(models.StayOffline)
			m.prompt = nil
			m.quitByUser = true
			return m, tea.Quit
		case key.Matches(msg, keys.yes):
			m.prompt.answer(models.SyncToCurrent)
			m.prompt = nil
		case key.Matches(msg, keys.no):
			m.prompt.answer(models.StayOffline)
			m.prompt = nil
		}
		return m, nil
	}

	if m.showError {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.showError = false
			m.errorOverlay.message = ""
		}
		return m, nil
	}

	if m.showBuildInfo {
		if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
			m.showBuildInfo = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		m.quitByUser = true
		return m, tea.Quit

	case key.Matches(msg, keys.sync):
		m.trigger.Trigger()
		m.statusLine = "sync requested"
		return m, cmdClearStatus()

	case key.Matches(msg, keys.version):
		m.showBuildInfo = true

	case key.Matches(msg, keys.up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.down):
		if m.cursor < len(m.snapshot.Conflicts)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.copy):
		if path, ok := m.selectedConflict(); ok {
			return m, cmdCopyToClipboard(path, filepath.Join(m.vaultPath, filepath.FromSlash(path)))
		}

	case key.Matches(msg, keys.keepLocal):
		return m, m.cmdResolve(models.KeepLocal)
	case key.Matches(msg, keys.keepRemote):
		return m, m.cmdResolve(models.KeepRemote)
	case key.Matches(msg, keys.keepBoth):
		return m, m.cmdResolve(models.KeepBoth)
	}

	return m, nil
}

func (m appModel) selectedConflict() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Conflicts) {
		return "", false
	}
	return m.snapshot.Conflicts[m.cursor], true
}

func (m appModel) cmdResolve(resolution models.ConflictResolution) tea.Cmd {
	path, ok := m.selectedConflict()
	if !ok {
		return nil
	}

	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		err := engine.ResolveConflict(ctx, path, resolution)
		return conflictResolvedMsg{path: path, resolution: resolution, err: err}
	}
}

func cmdCopyToClipboard(path, fullPath string) tea.Cmd {
	return func() tea.Msg {
		if err := copyToClipboard(fullPath); err != nil {
			return copiedMsg{path: path, err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{path: path}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m appModel) View() string {
	switch {
	case m.prompt != nil:
		return m.prompt.View()
	case m.showError:
		return m.errorOverlay.View()
	case m.showBuildInfo:
		return renderBuildInfoWindow(m.buildInfo)
	}

	hotKeys := "s: sync now    v: version"
	if len(m.snapshot.Conflicts) > 0 {
		hotKeys = "↑/↓: select    1: keep local    2: keep remote    3: keep both    c: copy path\n  " + hotKeys
	}
	return renderPage("VAULT SYNC", m.renderStatus(), hotKeys)
}

func (m appModel) renderStatus() string {
	s := m.snapshot
	var b strings.Builder

	b.WriteString("Vault:      " + valueOrDash(m.vaultPath) + "\n")
	b.WriteString("State:      " + m.syncScreen.View(s.State))
	if s.Badge != "" {
		b.WriteString("  " + badgeStyle.Render("["+s.Badge+"]"))
	}
	b.WriteString("\n")

	lastSync := "never"
	if s.LastSyncAt != nil {
		lastSync = s.LastSyncAt.Local().Format(time.DateTime)
	}
	b.WriteString("Last sync:  " + lastSync + "\n")
	fmt.Fprintf(&b, "Last cycle: %d up, %d down, %d deleted, %d pending\n",
		s.Uploaded, s.Downloaded, s.Deleted, s.Pending)

	if s.Error != nil {
		b.WriteString("\n" + errorStyle.Render(app.MessageFor(s.Error.Code)) + "\n")
		if s.Error.Message != "" {
			b.WriteString(helpStyle.Render(fitText(s.Error.Message, 72)) + "\n")
		}
	}

	if len(s.Conflicts) > 0 {
		b.WriteString("\nConflicts:\n")
		for i, p := range s.Conflicts {
			line := "  " + p
			if i == m.cursor {
				line = selectedStyle.Render("> " + p)
			}
			b.WriteString(line + "\n")
		}
	}

	if len(s.Failed) > 0 {
		b.WriteString("\nFailed:\n")
		for _, f := range s.Failed {
			fmt.Fprintf(&b, "  %s (%s, %s)\n", f.Path, f.Kind, f.Code)
		}
	}

	if len(s.RecentFiles) > 0 {
		b.WriteString("\nRecent:\n")
		for _, p := range s.RecentFiles {
			b.WriteString("  " + p + "\n")
		}
	}

	if m.statusLine != "" {
		b.WriteString("\n" + helpStyle.Render(m.statusLine))
	}

	return strings.TrimRight(b.String(), "\n")
}
