// Package models defines the core domain models for splitbill.
//
// # Aggregate
//
// A Bill is the unit of splitting. It owns its Participants and Items, and
// every Item owns its Splits. Deleting a bill removes everything beneath it;
// deleting a participant removes only that participant's splits.
//
// # Derived values
//
// Totals, tip amounts, amounts owed and split status are not stored on these
// types. They are computed on demand by the calculator package from a bill
// snapshot, so they cannot go stale after a mutation.
//
// # Identifiers
//
// Relationships use ID strings rather than pointers. A Split refers to its
// participant by ID; the owning Item is implied by containment.
package models
