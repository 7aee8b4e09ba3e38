package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

// userID reads the authenticated account from the context. On failure it
// writes a 401 and returns false.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, found := utils.GetUserIDFromContext(r.Context())
	if !found {
		logger.FromRequest(r).Err(ErrNoUserID).Str("uri", r.RequestURI).Send()
		utils.WriteError(w, http.StatusUnauthorized, models.CodeUnauthorized, ErrNoUserID.Error())
		return "", false
	}
	return userID, true
}

// decodeJSON decodes the request body into dst. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		logger.FromRequest(r).Err(err).Str("uri", r.RequestURI).Msg("Invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, models.CodeInvalidState, "invalid JSON was passed")
		return false
	}
	return true
}
