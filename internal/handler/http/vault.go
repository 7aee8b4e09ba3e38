package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

// createVault returns the caller's vault with the given name, creating it
// on first use.
func (h *Handler) createVault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateVaultRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vault, err := h.services.VaultService.CreateVault(ctx, userID, req.Name)
	if err != nil {
		writeServiceError(w, r, err, models.CodeInvalidState, "error creating vault")
		return
	}

	log.Info().Str("vault_id", vault.ID).Str("name", vault.Name).Msg("vault resolved")
	utils.WriteJSON(w, vault, http.StatusOK)
}

func (h *Handler) getVault(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	vault, err := h.services.VaultService.GetVault(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, models.CodeVaultNotFound, "error getting vault")
		return
	}

	utils.WriteJSON(w, vault, http.StatusOK)
}
