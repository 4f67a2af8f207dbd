// Package syncclient keeps a checklist.Store in step with the user's remote
// record.
//
// After a successful sign-in or sign-up the client loads the user's record,
// hydrates the store and enters the Ready state. From then on every store
// mutation schedules a trailing-edge debounced save: a burst of edits
// produces one save, fired SaveDelay after the last edit. Reset is saved
// immediately. Saves are fire-and-forget; failures are logged and dropped
// while the in-memory state stays authoritative.
//
// Load failures never block: a missing record and a failed fetch both
// yield the default record.
package syncclient
