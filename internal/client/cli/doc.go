// Package cli provides the interactive daastan storefront client.
//
// It wires configuration, the SQLite-backed session store, the API
// pipeline and the storefront services into a REPL. Commands browse the
// catalog, manage the cart and place orders; admin commands are refused
// locally unless the stored user is an admin. When a session can no longer
// be refreshed the user is asked to log in again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
