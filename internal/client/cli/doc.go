// Package cli provides the interactive GophGarage command-line client.
//
// It wires configuration, the local cache, the API client, the
// reconciliation layer and an interactive REPL that keeps working offline.
// Typical flow: restore or prompt for a session, start the background
// connectivity watcher and reminder scheduler, and execute user commands.
//
// Key features:
//   - Register / Login / Logout (online with offline fallback)
//   - Vehicles: list, add, edit, delete, photo upload
//   - Maintenance history with automatic oil change reminders
//   - Reminders: add, list, complete, due soon
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and the connectivity package for details.
package cli
