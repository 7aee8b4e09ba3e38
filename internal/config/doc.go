// Package config provides configuration loading, merging, and validation
// for the sync server and the desktop sync client.
//
// Configuration is assembled from multiple sources; for each field the first
// source that sets it wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The entry points are [GetServerConfig] and [GetClientConfig], which build
// validated views over [StructuredConfig].
package config
