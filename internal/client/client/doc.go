// Package client talks to the GophGarage REST backend.
//
// # Overview
//
// Client is the transport-agnostic contract of the authenticated remote
// store: auth, health probing, CRUD over vehicles, maintenances and
// reminders, device registration and vehicle photo URLs. HTTPClient
// implements it over JSON/HTTP with a bearer token taken from a
// TokenProvider on every request.
//
// # Error Handling
//
// Transport failures and 5xx answers map to ErrUnavailable; 401/403 map to
// ErrUnauthorized; 400, 404 and 409 map to ErrBadRequest, ErrNotFound and
// ErrConflict. The server message is kept in the wrapped error; match with
// errors.Is.
package client
