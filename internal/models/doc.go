// Package models defines the core domain models for MoneyBalance.
//
// # Models
//
//   - Calculation: a named set of shared expenses with one main currency
//   - Currency: a currency usable within a calculation and its exchange rate
//   - Person: a participant of a calculation
//   - Expense: an amount paid by one person, split evenly or by weights
//
// # Design Principles
//
//  1. **Avoid circular references**: relationships are ID strings resolved
//     through the owning calculation (see package ledger), never pointers.
//  2. **Storage agnostic**: amounts are floats in major units here; the store
//     persists them as fixed-point integers scaled by the currency's decimal
//     factor.
//  3. **Calendar days**: expense dates carry no time of day.
package models
