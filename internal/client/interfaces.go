// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the lifecycle contract of the runnable client application.
type Client interface {
	// Run starts the client and blocks until the user quits or ctx ends.
	Run(ctx context.Context) error
}
