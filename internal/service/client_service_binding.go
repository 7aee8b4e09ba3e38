package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-vault-sync/internal/adapter"
	"github.com/MKhiriev/go-vault-sync/internal/index"
	"github.com/MKhiriev/go-vault-sync/internal/logger"
	"github.com/MKhiriev/go-vault-sync/internal/store"
	"github.com/MKhiriev/go-vault-sync/internal/utils"
	"github.com/MKhiriev/go-vault-sync/models"
)

type clientBindingService struct {
	bindings store.BindingRepository
	adapter  adapter.ServerAdapter
	resolver ConflictResolver
	index    *index.Store
	ids      *utils.UUIDGenerator

	deviceID string
	timeout  time.Duration
	now      func() time.Time

	logger *logger.Logger
}

// NewClientBindingService returns a ClientBindingService. A nil resolver
// answers every binding conflict with stay_offline. Non-positive timeouts use
// two minutes.
func NewClientBindingService(
	bindings store.BindingRepository,
	serverAdapter adapter.ServerAdapter,
	resolver ConflictResolver,
	idx *index.Store,
	deviceID string,
	timeout time.Duration,
	log *logger.Logger,
) ClientBindingService {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &clientBindingService{
		bindings: bindings,
		adapter:  serverAdapter,
		resolver: resolver,
		index:    idx,
		ids:      utils.NewUUIDGenerator(),
		deviceID: deviceID,
		timeout:  timeout,
		now:      time.Now,
		logger:   log,
	}
}

// Ensure implements ClientBindingService.
func (s *clientBindingService) Ensure(ctx context.Context, localPath, vaultName string) (models.VaultBinding, error) {
	if vaultName == "" {
		vaultName = filepath.Base(localPath)
	}
	log := s.logger.WithVault(localPath)

	userID, err := s.adapter.CurrentUserID()
	if err != nil {
		return models.VaultBinding{}, err
	}

	binding, err := s.bindings.GetBinding(ctx, localPath)
	if errors.Is(err, store.ErrBindingNotFound) {
		log.Info().Str("user_id", userID).Msg("vault is not bound yet")
		return s.bind(ctx, localPath, vaultName, userID, false)
	}
	if err != nil {
		return models.VaultBinding{}, fmt.Errorf("load binding: %w", err)
	}

	if binding.BoundUserID == userID {
		return binding, nil
	}

	log.Warn().
		Str("bound_user_id", binding.BoundUserID).
		Str("current_user_id", userID).
		Msg("vault is bound to another account")

	choice := s.askUser(ctx, models.BindingConflictRequest{
		RequestID:     s.ids.Generate(),
		VaultPath:     localPath,
		VaultName:     binding.VaultName,
		BoundUserID:   binding.BoundUserID,
		CurrentUserID: userID,
	})
	if choice != models.SyncToCurrent {
		log.Info().Msg("staying offline")
		return binding, ErrEngineOffline
	}
	return s.bind(ctx, localPath, vaultName, userID, true)
}

func (s *clientBindingService) bind(ctx context.Context, localPath, vaultName, userID string, rebind bool) (models.VaultBinding, error) {
	v, err := s.adapter.CreateVault(ctx, vaultName)
	if err != nil {
		return models.VaultBinding{}, err
	}

	binding := models.VaultBinding{
		LocalPath:   localPath,
		VaultID:     v.ID,
		VaultName:   v.Name,
		BoundUserID: userID,
		DeviceID:    s.deviceID,
		BoundAt:     s.now().UTC(),
	}
	if err = s.bindings.SaveBinding(ctx, binding); err != nil {
		return models.VaultBinding{}, fmt.Errorf("save binding: %w", err)
	}

	// clocks of the old vault mean nothing to the new one
	if rebind {
		if err = s.index.Reset(ctx, localPath); err != nil {
			return models.VaultBinding{}, err
		}
	}

	s.logger.WithVault(localPath).Info().
		Str("vault_id", binding.VaultID).
		Str("user_id", userID).
		Bool("rebind", rebind).
		Msg("vault bound")
	return binding, nil
}

// askUser delivers req to the resolver and waits for the answer. Timeouts,
// resolver errors, invalid answers and panics all mean stay_offline.
func (s *clientBindingService) askUser(ctx context.Context, req models.BindingConflictRequest) models.BindingConflictChoice {
	if s.resolver == nil {
		return models.StayOffline
	}
	log := s.logger.With().Str("request_id", req.RequestID).Logger()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer := make(chan models.BindingConflictChoice, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("binding conflict resolver panicked")
				answer <- models.StayOffline
			}
		}()
		choice, err := s.resolver.ResolveBindingConflict(ctx, req)
		if err != nil {
			log.Warn().Err(err).Msg("binding conflict resolver failed")
			choice = models.StayOffline
		}
		answer <- choice
	}()

	select {
	case choice := <-answer:
		if !choice.Valid() {
			log.Warn().Str("choice", string(choice)).Msg("unknown binding conflict choice")
			return models.StayOffline
		}
		return choice
	case <-ctx.Done():
		log.Warn().Err(ctx.Err()).Msg("binding conflict unanswered")
		return models.StayOffline
	}
}
