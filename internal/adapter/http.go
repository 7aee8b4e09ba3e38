package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

const (
	headerHash     = "HashSHA256"
	headerDeviceID = "X-Device-ID"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	hashKey  string
	deviceID string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter builds the REST implementation of [ServerAdapter].
// The address may omit the scheme, in which case http is assumed.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	a := &httpServerAdapter{
		client:   utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		hashKey:  appCfg.HashKey,
		deviceID: appCfg.DeviceID,
		logger:   log,
	}
	a.SetToken(appCfg.AuthToken)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) CurrentUserID() (string, error) {
	token := h.Token()
	if token == "" {
		return "", models.NewSyncError(models.CodeUnauthorized, "", ErrNoToken)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return "", models.NewSyncError(models.CodeUnauthorized, "", err)
	}
	return userID, nil
}

func (h *httpServerAdapter) CreateVault(ctx context.Context, name string) (models.Vault, error) {
	var vault models.Vault
	if err := h.postJSON(ctx, "/api/vaults", models.CreateVaultRequest{Name: name}, &vault, opGeneric, ""); err != nil {
		return models.Vault{}, err
	}
	return vault, nil
}

func (h *httpServerAdapter) GetVault(ctx context.Context, vaultID string) (models.Vault, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", vaultID).
		Get("/api/vaults/{id}")
	if err != nil {
		return models.Vault{}, mapTransportError("", err)
	}
	if err = mapHTTPError(resp, opGeneric, ""); err != nil {
		return models.Vault{}, err
	}

	var vault models.Vault
	if err = json.Unmarshal(resp.Body(), &vault); err != nil {
		return models.Vault{}, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return vault, nil
}

func (h *httpServerAdapter) Diff(ctx context.Context, req models.SyncDiffRequest) (models.SyncDiffResponse, error) {
	if req.DeviceID == "" {
		req.DeviceID = h.deviceID
	}

	var diff models.SyncDiffResponse
	if err := h.postJSON(ctx, "/api/sync/diff", req, &diff, opGeneric, ""); err != nil {
		return models.SyncDiffResponse{}, err
	}
	return diff, nil
}

func (h *httpServerAdapter) Upload(ctx context.Context, req models.FileUploadRequest) (models.FileUploadResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return models.FileUploadResponse{}, models.NewSyncError(models.CodeUploadFailed, req.Path, err)
	}

	resp, err := h.signedRequest(ctx, payload).Put("/api/files/content")
	if err != nil {
		return models.FileUploadResponse{}, mapTransportError(req.Path, err)
	}
	if err = mapHTTPError(resp, opUpload, req.Path); err != nil {
		return models.FileUploadResponse{}, err
	}

	var out models.FileUploadResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.FileUploadResponse{}, models.NewSyncError(models.CodeUploadFailed, req.Path, fmt.Errorf("%w: %w", ErrDecodeResponse, err))
	}

	h.logger.Debug().Str("path", req.Path).Str("hash", req.Hash).Int64("size", out.Size).Msg("file uploaded")
	return out, nil
}

func (h *httpServerAdapter) Download(ctx context.Context, vaultID, path string) (models.FileDownloadResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParams(map[string]string{"vaultId": vaultID, "path": path}).
		Get("/api/files/content")
	if err != nil {
		return models.FileDownloadResponse{}, mapTransportError(path, err)
	}
	if err = mapHTTPError(resp, opDownload, path); err != nil {
		return models.FileDownloadResponse{}, err
	}

	var out models.FileDownloadResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.FileDownloadResponse{}, models.NewSyncError(models.CodeDownloadFailed, path, fmt.Errorf("%w: %w", ErrDecodeResponse, err))
	}
	return out, nil
}

func (h *httpServerAdapter) Commit(ctx context.Context, req models.SyncCommitRequest) (models.SyncCommitResponse, error) {
	if req.DeviceID == "" {
		req.DeviceID = h.deviceID
	}

	var out models.SyncCommitResponse
	if err := h.postJSON(ctx, "/api/sync/commit", req, &out, opCommit, ""); err != nil {
		return models.SyncCommitResponse{}, err
	}
	return out, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.VersionResponse, error) {
	var out models.VersionResponse
	resp, err := h.client.R().SetContext(ctx).SetResult(&out).Get("/api/version")
	if err != nil {
		return models.VersionResponse{}, mapTransportError("", err)
	}
	if err = mapHTTPError(resp, opGeneric, ""); err != nil {
		return models.VersionResponse{}, err
	}
	return out, nil
}

func (h *httpServerAdapter) postJSON(ctx context.Context, route string, body, result any, op operation, path string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	resp, err := h.signedRequest(ctx, payload).Post(route)
	if err != nil {
		h.logger.Err(err).Str("route", route).Msg("request failed")
		return mapTransportError(path, err)
	}
	if err = mapHTTPError(resp, op, path); err != nil {
		h.logger.Warn().Err(err).Str("route", route).Int("status", resp.StatusCode()).Msg("server rejected request")
		return err
	}

	if err = json.Unmarshal(resp.Body(), result); err != nil {
		return models.NewSyncError(serverFailureCode[op], path, fmt.Errorf("%w: %w", ErrDecodeResponse, err))
	}
	return nil
}

// signedRequest attaches the JSON body and, when a hash key is configured,
// its HMAC in the HashSHA256 header.
func (h *httpServerAdapter) signedRequest(ctx context.Context, payload []byte) *resty.Request {
	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload)
	if h.hashKey != "" {
		req.SetHeader(headerHash, utils.HashString(payload, h.hashKey))
	}
	return req
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if h.deviceID != "" {
		req.SetHeader(headerDeviceID, h.deviceID)
	}
	return req
}
