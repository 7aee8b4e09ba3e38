package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-vault-sync/models"
)

// operation selects the code a generic server failure is reported with.
type operation int

const (
	opGeneric operation = iota
	opUpload
	opDownload
	opCommit
)

var serverFailureCode = map[operation]models.SyncErrorCode{
	opGeneric:  models.CodeNetworkError,
	opUpload:   models.CodeUploadFailed,
	opDownload: models.CodeDownloadFailed,
	opCommit:   models.CodeCommitFailed,
}

// mapTransportError classifies a failure to reach the server at all.
func mapTransportError(path string, err error) error {
	return models.NewSyncError(models.CodeNetworkError, path, err)
}

// mapHTTPError turns a non-2xx response into a *models.SyncError. A code in
// the {"code","message"} body wins over the status mapping.
func mapHTTPError(resp *resty.Response, op operation, path string) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	message := body

	var info models.SyncErrorInfo
	if json.Unmarshal(resp.Body(), &info) == nil && info.Code != "" {
		if info.Message != "" {
			message = info.Message
		}
		if knownCode(info.Code) {
			return models.NewSyncError(info.Code, path, fmt.Errorf("http %d: %s", status, message))
		}
	}
	if message == "" {
		message = http.StatusText(status)
	}
	cause := fmt.Errorf("http %d: %s", status, message)

	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return models.NewSyncError(models.CodeUnauthorized, path, cause)
	case status == http.StatusNotFound:
		return models.NewSyncError(models.CodeVaultNotFound, path, cause)
	case status == http.StatusConflict:
		return models.NewSyncError(models.CodeSyncInProgress, path, cause)
	case status == http.StatusRequestEntityTooLarge, status == http.StatusInsufficientStorage:
		return models.NewSyncError(models.CodeQuotaExceeded, path, cause)
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return models.NewSyncError(models.CodeInvalidState, path, cause)
	default:
		return models.NewSyncError(serverFailureCode[op], path, cause)
	}
}

func knownCode(code models.SyncErrorCode) bool {
	switch code {
	case models.CodeNetworkError, models.CodeUploadFailed, models.CodeDownloadFailed,
		models.CodeCommitFailed, models.CodeQuotaExceeded, models.CodeInvalidState,
		models.CodeVaultNotFound, models.CodeUnauthorized, models.CodeSyncInProgress:
		return true
	default:
		return false
	}
}
