// Package reconcile keeps the client's view of vehicles, maintenances and
// reminders consistent across three places: in-memory state, the local
// cache and the remote store.
//
// # Writes
//
// Every mutation is applied to memory and the cache synchronously, then
// (when online) sent to the remote store in the background. Adds return an
// Op that moves from Pending to Committed once the server assigns the
// canonical identifier, or to RolledBack when a vehicle creation is
// rejected. Offline adds, and maintenance or reminder adds that fail
// remotely, end as LocalOnly and are pushed again after reconnection.
// Remote failures of updates and deletes are logged only.
//
// # Reminders
//
// A maintenance of the OilChange category keeps exactly one active reminder
// per vehicle scheduled 6 months and 5000 mileage units ahead. Completing
// such a reminder schedules its successor.
//
// # Refresh
//
// Refresh replaces a collection with the server's copy. An empty server
// answer never wipes non-empty local data; the empty-remote signal is raised
// instead.
//
// # Observing
//
// Subscribe* methods return channels of snapshots. Every subscriber gets
// its own copy and never blocks the layer; slow readers see the latest
// snapshot only.
package reconcile
