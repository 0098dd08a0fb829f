// Package common contains small helpers and constants shared by the client
// packages.
package common

// RequestIDHeaderName is the HTTP header carrying a per-request correlation
// id on outbound API calls.
const RequestIDHeaderName = "X-Request-ID"
