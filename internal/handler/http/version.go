package http

import (
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.buildInfo.Response(), http.StatusOK)
}
