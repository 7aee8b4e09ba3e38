package http

import (
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

// diff answers a client's index summary with one action per path.
func (h *Handler) diff(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.SyncDiffRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DeviceID == "" {
		req.DeviceID, _ = utils.GetDeviceIDFromContext(r.Context())
	}

	resp, err := h.services.SyncService.Diff(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, models.CodeNetworkError, "error building diff")
		return
	}

	log.Debug().
		Str("vault_id", req.VaultID).
		Str("device_id", req.DeviceID).
		Int("files", len(req.Files)).
		Int("actions", len(resp.Actions)).
		Msg("diff built")
	utils.WriteJSON(w, resp, http.StatusOK)
}

// commit records completed transfers and returns the acknowledged paths.
func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.SyncCommitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DeviceID == "" {
		req.DeviceID, _ = utils.GetDeviceIDFromContext(r.Context())
	}

	resp, err := h.services.SyncService.Commit(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, models.CodeCommitFailed, "error committing changes")
		return
	}

	log.Info().
		Str("vault_id", req.VaultID).
		Str("device_id", req.DeviceID).
		Int("completed", len(req.Completed)).
		Int("acknowledged", len(resp.Acknowledged)).
		Msg("changes committed")
	utils.WriteJSON(w, resp, http.StatusOK)
}
