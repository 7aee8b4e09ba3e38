// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the desktop sync client runtime.
//
// It wires configuration, local storage, the server adapter, the sync
// services, the filesystem watcher and the terminal UI into a single
// process lifecycle with graceful shutdown.
package client
