package http

import (
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.FileUploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.services.FileService.Upload(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, models.CodeUploadFailed, "error uploading file")
		return
	}

	logger.FromRequest(r).Debug().
		Str("vault_id", req.VaultID).
		Str("path", req.Path).
		Int64("size", resp.Size).
		Msg("file content stored")
	utils.WriteJSON(w, resp, http.StatusOK)
}

// downloadFile serves the current content of ?path= in ?vaultId=.
func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	resp, err := h.services.FileService.Download(r.Context(), userID, query.Get("vaultId"), query.Get("path"))
	if err != nil {
		writeServiceError(w, r, err, models.CodeDownloadFailed, "error downloading file")
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
