// Package cli provides the interactive notes client for the terminal.
//
// It wires configuration, the local session database, the HTTP auth client
// and the UI flows, and runs a REPL that stands in for the browser shell.
// Routes ("/login", "/register", "/dashboard") are tracked by a router so the
// prompt can show where the user is.
//
// Key features:
//   - Register / Login / Logout
//   - Session kept across restarts in a local SQLite file
//   - Add and list notes on the dashboard (kept in memory only)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
