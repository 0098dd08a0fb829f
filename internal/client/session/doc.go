// Package session owns the authenticated identity of the client.
//
// A Store holds one Record (token, user id, username) that is either fully
// present or fully absent. Writes and deletes reach the Persister as a
// single operation, so a crash can never leave a token without its user.
// Interested parties call Subscribe and receive the authenticated flag each
// time it may have changed instead of polling the store.
package session
