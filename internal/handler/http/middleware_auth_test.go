package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/mock"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

func newHandlerWithAuthService(authSvc service.AuthService) *Handler {
	return &Handler{
		logger:   logger.Nop(),
		services: &service.Services{AuthService: authSvc},
	}
}

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "valid bearer", header: "Bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "lowercase scheme", header: "bearer tok", wantToken: "tok"},
		{name: "missing token part", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "trailing space only", header: "Bearer ", wantErr: ErrEmptyToken},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		parseErr   error
		expectCall bool
		wantStatus int
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer bad", parseErr: service.ErrTokenIsExpiredOrInvalid, expectCall: true, wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", expectCall: true, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mock.NewMockAuthService(gomock.NewController(t))
			if tt.expectCall {
				authSvc.EXPECT().ParseToken(gomock.Any(), gomock.Any()).
					Return(models.Token{UserID: "user-1"}, tt.parseErr)
			}

			var gotUser, gotDevice string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = utils.GetUserIDFromContext(r.Context())
				gotDevice, _ = utils.GetDeviceIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			req.Header.Set(deviceIDHeader, "laptop")
			rec := httptest.NewRecorder()
			newHandlerWithAuthService(authSvc).auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "user-1", gotUser)
				assert.Equal(t, "laptop", gotDevice)
				return
			}
			assert.Contains(t, rec.Body.String(), string(models.CodeUnauthorized))
			assert.Empty(t, gotUser, "next must not be called")
		})
	}
}
