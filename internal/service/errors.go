package service

import "errors"

var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVaultAccessDenied = errors.New("vault belongs to another user")
	ErrQuotaExceeded     = errors.New("vault quota exceeded")
	ErrHashMismatch      = errors.New("content does not match hash")
	ErrFileDeleted       = errors.New("file is deleted")

	ErrNoBinding       = errors.New("vault is not bound")
	ErrEngineOffline   = errors.New("sync engine is offline")
	ErrUnknownConflict = errors.New("path is not in conflict")
)
