// Package cache is the client's local, per-user persistent mirror.
//
// The cache is a key/value table of JSON documents stored in SQLite. Each
// collection of a user lives under its own key (vehicles_<userId>,
// maintenances_<userId>, reminders_<userId>) as a JSON array, so a user's
// data survives restarts and logouts and is reloaded on the next login.
// The same table keeps the last session and offline-login verifiers.
//
// Only the reconciliation layer and the auth service write here.
package cache
