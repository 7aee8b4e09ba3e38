package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-vault-sync/models"
)

func TestMessageFor(t *testing.T) {
	codes := []models.SyncErrorCode{
		models.CodeNetworkError, models.CodeUploadFailed, models.CodeDownloadFailed,
		models.CodeCommitFailed, models.CodeQuotaExceeded, models.CodeInvalidState,
		models.CodeVaultNotFound, models.CodeUnauthorized, models.CodeSyncInProgress,
	}
	for _, code := range codes {
		t.Run(string(code), func(t *testing.T) {
			msg := MessageFor(code)
			assert.NotEmpty(t, msg)
			assert.NotEqual(t, MsgUnknown, msg)
		})
	}

	assert.Equal(t, MsgUnknown, MessageFor("SOMETHING_NEW"))
	assert.Equal(t, MsgQuotaExceeded, MessageFor(models.CodeQuotaExceeded))
}
