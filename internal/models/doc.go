// Package models defines the wire shapes exchanged between the GophGarage
// client and server: vehicles, maintenance records, reminders and the auth
// payloads. The same JSON shapes are persisted in the client cache.
//
// # Identifiers
//
// Identifiers are opaque comparable tokens (ID). Depending on the backend
// they may be numeric or string keys; both decode to the same ID. Records
// created offline carry a temporary ID (see NewTemporaryID) until the server
// assigns the canonical one.
package models
