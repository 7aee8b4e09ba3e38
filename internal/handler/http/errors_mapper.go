package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

type errorStatus struct {
	status int
	code   models.SyncErrorCode
}

var errorStatusMap = map[error]errorStatus{
	service.ErrInvalidDataProvided:     {http.StatusBadRequest, models.CodeInvalidState},
	service.ErrTokenIsExpiredOrInvalid: {http.StatusUnauthorized, models.CodeUnauthorized},
	service.ErrVaultAccessDenied:       {http.StatusForbidden, models.CodeUnauthorized},
	service.ErrQuotaExceeded:           {http.StatusInsufficientStorage, models.CodeQuotaExceeded},
	service.ErrHashMismatch:            {http.StatusBadRequest, models.CodeUploadFailed},
	service.ErrFileDeleted:             {http.StatusNotFound, models.CodeDownloadFailed},

	store.ErrVaultNotFound: {http.StatusNotFound, models.CodeVaultNotFound},
	store.ErrFileNotFound:  {http.StatusNotFound, models.CodeDownloadFailed},
	store.ErrBlobNotFound:  {http.StatusNotFound, models.CodeDownloadFailed},
	store.ErrTransient:     {http.StatusServiceUnavailable, models.CodeNetworkError},
}

// statusFromError resolves the HTTP status and wire code of err. Unknown
// errors become 500 with fallback as the code.
func statusFromError(err error, fallback models.SyncErrorCode) (int, models.SyncErrorCode) {
	for target, s := range errorStatusMap {
		if errors.Is(err, target) {
			return s.status, s.code
		}
	}
	return http.StatusInternalServerError, fallback
}

// writeServiceError logs err and writes the mapped error body. Internal
// failures are reported without their details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback models.SyncErrorCode, msg string) {
	status, code := statusFromError(err, fallback)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Int("status", status).Str("code", string(code)).Msg(msg)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = msg
	}
	utils.WriteError(w, status, code, message)
}
