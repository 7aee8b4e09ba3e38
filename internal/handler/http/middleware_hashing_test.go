// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
)

const testHashKey = "secret"

func TestVerifyHash(t *testing.T) {
	utils.InitHasherPool(testHashKey)
	body := []byte(`{"vaultId":"v1","files":[]}`)

	tests := []struct {
		name       string
		hashKey    string
		signature  string
		wantStatus int
		wantNext   bool
	}{
		{name: "disabled", hashKey: "", signature: "garbage", wantStatus: http.StatusOK, wantNext: true},
		{name: "unsigned request", hashKey: testHashKey, wantStatus: http.StatusOK, wantNext: true},
		{name: "valid signature", hashKey: testHashKey, signature: utils.HashString(body, testHashKey), wantStatus: http.StatusOK, wantNext: true},
		{name: "wrong key", hashKey: testHashKey, signature: utils.HashString(body, "other"), wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{hashKey: tt.hashKey, logger: logger.Nop()}

			var nextBody []byte
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				var err error
				nextBody, err = io.ReadAll(r.Body)
				require.NoError(t, err)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/sync/diff", bytes.NewReader(body))
			if tt.signature != "" {
				req.Header.Set(hashHeader, tt.signature)
			}
			rec := httptest.NewRecorder()
			h.verifyHash(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, called)
			if tt.wantNext {
				assert.Equal(t, body, nextBody, "body must be restored for the handler")
			}
		})
	}
}
