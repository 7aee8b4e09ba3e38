package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-vault-sync/models"
)

// WriteJSON marshals data and writes it with statusCode. On marshal failure a
// plain 500 is written instead.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes the {"code","message"} error body clients map back to a
// sync error code.
func WriteError(w http.ResponseWriter, statusCode int, code models.SyncErrorCode, message string) {
	_, _ = WriteJSON(w, models.SyncErrorInfo{Code: code, Message: message}, statusCode)
}
