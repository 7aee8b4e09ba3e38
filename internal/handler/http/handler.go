package http

import (
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/config"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/service"
	"github.com/MKhiriev/go-vault-sync/models"
)

// maxUploadBytes bounds a single JSON request body. Content travels base64
// encoded inside the upload request.
const maxUploadBytes = 64 << 20

type Handler struct {
	services  *service.Services
	buildInfo models.AppBuildInfo

	hashKey        string
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.ServerConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		buildInfo:      buildInfo,
		hashKey:        cfg.App.HashKey,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
