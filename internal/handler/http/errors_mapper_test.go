package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/models"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   models.SyncErrorCode
	}{
		{"wrapped validation", fmt.Errorf("%w: bad path", service.ErrInvalidDataProvided), http.StatusBadRequest, models.CodeInvalidState},
		{"token", service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, models.CodeUnauthorized},
		{"foreign vault", service.ErrVaultAccessDenied, http.StatusForbidden, models.CodeUnauthorized},
		{"quota", service.ErrQuotaExceeded, http.StatusInsufficientStorage, models.CodeQuotaExceeded},
		{"hash", service.ErrHashMismatch, http.StatusBadRequest, models.CodeUploadFailed},
		{"deleted", service.ErrFileDeleted, http.StatusNotFound, models.CodeDownloadFailed},
		{"no vault", fmt.Errorf("get vault: %w", store.ErrVaultNotFound), http.StatusNotFound, models.CodeVaultNotFound},
		{"no file", store.ErrFileNotFound, http.StatusNotFound, models.CodeDownloadFailed},
		{"no blob", store.ErrBlobNotFound, http.StatusNotFound, models.CodeDownloadFailed},
		{"transient", store.ErrTransient, http.StatusServiceUnavailable, models.CodeNetworkError},
		{"unknown", assert.AnError, http.StatusInternalServerError, models.CodeCommitFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := statusFromError(tt.err, models.CodeCommitFailed)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
