package tui

import (
	"strings"

	"github.com/MKhiriev/go-vault-sync/models"
)

// bindingPrompt is the pending question about a vault bound to another
// account. reply is answered exactly once.
type bindingPrompt struct {
	req   models.BindingConflictRequest
	reply chan<- models.BindingConflictChoice
}

func (p *bindingPrompt) answer(choice models.BindingConflictChoice) {
	select {
	case p.reply <- choice:
	default:
	}
}

func (p *bindingPrompt) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Vault belongs to another account"))
	b.WriteString("\n\n")
	b.WriteString("Folder:        " + p.req.VaultPath + "\n")
	b.WriteString("Vault:         " + p.req.VaultName + "\n")
	b.WriteString("Bound to:      " + valueOrDash(p.req.BoundUserID) + "\n")
	b.WriteString("Signed in as:  " + valueOrDash(p.req.CurrentUserID) + "\n\n")
	b.WriteString("Sync this folder with the current account?\n")
	b.WriteString("Local sync state will be rebuilt.\n\n")
	b.WriteString(helpStyle.Render("y sync to current    n stay offline"))
	return overlayBoxStyle.Render(b.String())
}
