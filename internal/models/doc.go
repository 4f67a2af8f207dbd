// Package models defines the core domain models for rigbudget.
//
// # Models
//
//   - ChecklistRecord: the single persisted record per user, holding the
//     acquired flags, prices and part names of the fixed component slots,
//     the budget, the display currency and any user-added components.
//   - OtherComponent: one user-added entry that complements the fixed slots.
//   - Slot: a row of the static slot table shared by the store and renderers.
//   - User / Identity: a registered account and the public part of it that
//     clients get back from the auth provider.
//
// # Design Principles
//
//  1. **One record per user**: records are keyed and upserted by user ID.
//  2. **Fixed slots are configuration**: the slot set lives in [Slots] and is
//     never user-editable; only OtherComponents is extensible.
//  3. **IDs are strings**: relationships use ID strings, never pointers.
package models
