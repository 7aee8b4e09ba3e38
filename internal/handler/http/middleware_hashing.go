package http

import (
	"bytes"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

const hashHeader = "HashSHA256"

// verifyHash checks the HMAC of the request body against the HashSHA256
// header. It is a no-op when no hash key is configured or the request
// carries no signature, so bodyless GETs pass through.
func (h *Handler) verifyHash(next http.Handler) http.Handler {
	if h.hashKey == "" {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		signature := r.Header.Get(hashHeader)
		if signature == "" || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		// read bytes from body
		body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
		if err != nil {
			log.Err(err).Str("func", "*Handler.verifyHash").Msg("failed to read request body")
			utils.WriteError(w, http.StatusBadRequest, models.CodeInvalidState, "failed to read request body")
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		hashedBody := hex.EncodeToString(utils.Hash(body))
		if !utils.EqualHash(hashedBody, signature) {
			log.Error().Str("func", "*Handler.verifyHash").
				Str("hash from request", signature).
				Str("hashed body", hashedBody).
				Msg("hashes are not equal")
			utils.WriteError(w, http.StatusBadRequest, models.CodeInvalidState, "integrity check failed")
			return
		}

		log.Debug().Str("func", "*Handler.verifyHash").Msg("hashes are equal")
		next.ServeHTTP(w, r)
	})
}
