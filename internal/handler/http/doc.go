// Package http implements the REST transport of the sync server.
//
// It wires the vault, diff, content and commit routes onto a chi router and
// wraps them with tracing, access logging, compression, bearer
// authentication and request signature checks. Service errors are mapped to
// HTTP statuses and to the {"code","message"} body the desktop client turns
// back into a sync error code.
package http
