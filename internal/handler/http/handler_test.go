package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/mock"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/models"
)

const testToken = "test-token"

type handlerFixture struct {
	auth   *mock.MockAuthService
	vaults *mock.MockVaultService
	sync   *mock.MockSyncService
	files  *mock.MockFileService

	handler *Handler
	router  http.Handler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &handlerFixture{
		auth:   mock.NewMockAuthService(ctrl),
		vaults: mock.NewMockVaultService(ctrl),
		sync:   mock.NewMockSyncService(ctrl),
		files:  mock.NewMockFileService(ctrl),
	}
	services := &service.Services{
		AuthService:  f.auth,
		VaultService: f.vaults,
		SyncService:  f.sync,
		FileService:  f.files,
	}
	cfg := config.ServerConfig{Server: config.Server{HTTPAddress: ":8080", RequestTimeout: 5 * time.Second}}

	f.handler = NewHandler(services, cfg, models.NewAppBuildInfo("1.2.3", "2026-01-01", "abc"), logger.Nop())
	f.router = f.handler.Init()
	return f
}

// authorized makes the auth service accept testToken as user-1.
func (f *handlerFixture) authorized() {
	f.auth.EXPECT().ParseToken(gomock.Any(), testToken).Return(models.Token{UserID: "user-1"}, nil)
}

func (f *handlerFixture) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set(deviceIDHeader, "device-A")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestNewHandler(t *testing.T) {
	svc := &service.Services{}
	cfg := config.ServerConfig{
		App:    config.App{HashKey: "k"},
		Server: config.Server{RequestTimeout: time.Second},
	}
	h := NewHandler(svc, cfg, models.AppBuildInfo{}, logger.Nop())

	require.NotNil(t, h)
	assert.Same(t, svc, h.services)
	assert.Equal(t, "k", h.hashKey)
	assert.Equal(t, time.Second, h.requestTimeout)
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	router := newHandlerFixture(t).router

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/version"},
		{http.MethodPost, "/api/vaults"},
		{http.MethodGet, "/api/vaults/v1"},
		{http.MethodPost, "/api/sync/diff"},
		{http.MethodPost, "/api/sync/commit"},
		{http.MethodPut, "/api/files/content"},
		{http.MethodGet, "/api/files/content"},
	}
	for _, tc := range routes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			// no Authorization header: protected routes answer 401, which
			// still proves they are registered
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.NotEqual(t, http.StatusNotFound, rec.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestInit_UnknownRoutes(t *testing.T) {
	router := newHandlerFixture(t).router

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/nonexistent"},
		{http.MethodPost, "/api/version"},
		{http.MethodDelete, "/api/vaults/v1"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCreateVault(t *testing.T) {
	f := newHandlerFixture(t)
	f.authorized()
	vault := models.Vault{ID: "v1", Name: "Notes", OwnerID: "user-1"}
	f.vaults.EXPECT().CreateVault(gomock.Any(), "user-1", "Notes").Return(vault, nil)

	rec := f.do(t, http.MethodPost, "/api/vaults", models.CreateVaultRequest{Name: "Notes"})

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.Vault](t, rec)
	assert.Equal(t, "v1", got.ID)
	assert.Equal(t, "Notes", got.Name)
}

func TestCreateVault_InvalidJSON(t *testing.T) {
	f := newHandlerFixture(t)
	f.authorized()

	req := httptest.NewRequest(http.MethodPost, "/api/vaults", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.CodeInvalidState, decodeBody[models.SyncErrorInfo](t, rec).Code)
}

func TestGetVault(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   models.SyncErrorCode
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "missing", err: store.ErrVaultNotFound, wantStatus: http.StatusNotFound, wantCode: models.CodeVaultNotFound},
		{name: "foreign", err: service.ErrVaultAccessDenied, wantStatus: http.StatusForbidden, wantCode: models.CodeUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.authorized()
			f.vaults.EXPECT().GetVault(gomock.Any(), "user-1", "v1").
				Return(models.Vault{ID: "v1", OwnerID: "user-1"}, tt.err)

			rec := f.do(t, http.MethodGet, "/api/vaults/v1", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err != nil {
				assert.Equal(t, tt.wantCode, decodeBody[models.SyncErrorInfo](t, rec).Code)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	f := newHandlerFixture(t)
	f.authorized()

	req := models.SyncDiffRequest{
		VaultID: "v1",
		Files:   []models.FileSummary{{Path: "a.md", Hash: "h", VectorClock: models.VectorClock{"device-A": 1}}},
	}
	want := models.SyncDiffResponse{Actions: []models.SyncActionDTO{{Path: "a.md", Kind: models.ActionUpload}}}
	f.sync.EXPECT().Diff(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ any, _ string, got models.SyncDiffRequest) (models.SyncDiffResponse, error) {
			assert.Equal(t, "device-A", got.DeviceID, "device ID falls back to the header")
			assert.Len(t, got.Files, 1)
			return want, nil
		})

	rec := f.do(t, http.MethodPost, "/api/sync/diff", req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, want, decodeBody[models.SyncDiffResponse](t, rec))
}

func TestDiff_ValidationError(t *testing.T) {
	f := newHandlerFixture(t)
	f.authorized()
	f.sync.EXPECT().Diff(gomock.Any(), "user-1", gomock.Any()).
		Return(models.SyncDiffResponse{}, service.ErrInvalidDataProvided)

	rec := f.do(t, http.MethodPost, "/api/sync/diff", models.SyncDiffRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.CodeInvalidState, decodeBody[models.SyncErrorInfo](t, rec).Code)
}

func TestCommit(t *testing.T) {
	f := newHandlerFixture(t)
	f.authorized()

	req := models.SyncCommitRequest{
		VaultID:  "v1",
		DeviceID: "device-B",
		Completed: []models.CompletedFileDTO{
			{Path: "a.md", Hash: "h", VectorClock: models.VectorClock{"device-B": 2}},
		},
	}
	f.sync.EXPECT().Commit(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ any, _ string, got models.SyncCommitRequest) (models.SyncCommitResponse, error) {
			assert.Equal(t, "device-B", got.DeviceID, "explicit device ID wins over the header")
			return models.SyncCommitResponse{Acknowledged: []string{"a.md"}}, nil
		})

	rec := f.do(t, http.MethodPost, "/api/sync/commit", req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a.md"}, decodeBody[models.SyncCommitResponse](t, rec).Acknowledged)
}

func TestCommit_InternalErrorHidesDetails(t *testing.T) {
	f := newHandlerFixture(t)
	f.authorized()
	f.sync.EXPECT().Commit(gomock.Any(), "user-1", gomock.Any()).
		Return(models.SyncCommitResponse{}, store.ErrExecutingQuery)

	rec := f.do(t, http.MethodPost, "/api/sync/commit", models.SyncCommitRequest{VaultID: "v1"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	info := decodeBody[models.SyncErrorInfo](t, rec)
	assert.Equal(t, models.CodeCommitFailed, info.Code)
	assert.NotContains(t, info.Message, "sql")
}

func TestUploadFile(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   models.SyncErrorCode
	}{
		{name: "stored", wantStatus: http.StatusOK},
		{name: "quota", err: service.ErrQuotaExceeded, wantStatus: http.StatusInsufficientStorage, wantCode: models.CodeQuotaExceeded},
		{name: "hash mismatch", err: service.ErrHashMismatch, wantStatus: http.StatusBadRequest, wantCode: models.CodeUploadFailed},
		{name: "blob store down", err: assert.AnError, wantStatus: http.StatusInternalServerError, wantCode: models.CodeUploadFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.authorized()
			req := models.FileUploadRequest{VaultID: "v1", Path: "a.md", Hash: "h", Content: []byte("hello")}
			f.files.EXPECT().Upload(gomock.Any(), "user-1", req).
				Return(models.FileUploadResponse{Path: "a.md", Hash: "h", Size: 5}, tt.err)

			rec := f.do(t, http.MethodPut, "/api/files/content", req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				assert.Equal(t, int64(5), decodeBody[models.FileUploadResponse](t, rec).Size)
				return
			}
			assert.Equal(t, tt.wantCode, decodeBody[models.SyncErrorInfo](t, rec).Code)
		})
	}
}

func TestDownloadFile(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "unknown path", err: store.ErrFileNotFound, wantStatus: http.StatusNotFound},
		{name: "tombstone", err: service.ErrFileDeleted, wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.authorized()
			resp := models.FileDownloadResponse{
				Entry:   models.FileEntry{Path: "notes/a b.md", Hash: "h", VectorClock: models.VectorClock{"A": 1}},
				Content: []byte("hello"),
			}
			f.files.EXPECT().Download(gomock.Any(), "user-1", "v1", "notes/a b.md").Return(resp, tt.err)

			rec := f.do(t, http.MethodGet, "/api/files/content?vaultId=v1&path=notes%2Fa+b.md", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				assert.Equal(t, []byte("hello"), decodeBody[models.FileDownloadResponse](t, rec).Content)
			} else {
				assert.Equal(t, models.CodeDownloadFailed, decodeBody[models.SyncErrorInfo](t, rec).Code)
			}
		})
	}
}

func TestProtectedHandler_NoUserInContext(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	req := httptest.NewRequest(http.MethodPost, "/api/sync/diff", bytes.NewBufferString("{}"))
	rec := httptest.NewRecorder()

	h.diff(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
