// Package models defines the core domain models for gearcheck.
//
// # Models
//
//   - Table: the raw people × columns grid as loaded from a spreadsheet
//   - Schema: which columns are identity/metadata; every other column is an item
//   - ItemState: the canonical Absent / Present / Donated state of one cell
//   - Person: a typed view of one row, built through a Schema
//   - Verification: one saved verification, kept in the verification log
//
// # Design Principles
//
// 1. **Raw at rest, typed at the boundary**: the Table keeps cell text exactly
// as loaded so unknown columns survive a round trip. Item cells are decoded
// into ItemState by StateCodec as soon as anything reads them.
// 2. **No declared schema in the sheet**: the item set is whatever columns
// exist at load time minus the configured metadata columns.
// 3. **People are keyed by display name**: the first row with a name wins.
package models
