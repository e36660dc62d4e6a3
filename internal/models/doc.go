// Package models defines the core domain models for sotien.
//
// # Settlement models
//
//   - Group and Member: who shares expenses. Members may be linked to an
//     account through UserID, but identities are never resolved here.
//   - Expense and Share: a payment by one member split across participants
//     under a SplitPolicy. Shares are created together with their expense and
//     are never edited afterwards, except for the IsPaid flag.
//   - NetPosition and Transfer: derived views computed on demand by the
//     calculator package. They are not primary state.
//   - SettlementRecord: the caller-visible ledger entries emitted when a share
//     is marked paid.
//
// # Design Principles
//
// 1. **Integer money**: every amount is money.Cents, never float64
// 2. **Avoid circular references**: use ID strings instead of pointers for relationships
// 3. **Immutable shares**: amounts are fixed once the expense is persisted
package models
