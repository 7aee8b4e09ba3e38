// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request DTOs before they reach the service layer.
//
// A Validator accepts any supported model (value or pointer) and an optional
// list of field names that restricts which rules run. Handlers call it right
// after decoding and map failures to 400 / INVALID_STATE.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator validates the provided input and optionally restricts validation
// to specific named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
