// Package stores provides credential store adapters satisfying the
// cxauth read contract.
//
// # Adapters
//
//   - [PostgresStore] — pgx-backed lookup against the external user table.
//   - [MemoryStore] — seeded in-memory records for the demo deployment
//     and for tests.
//
// Both are read-only: the credential store's schema, migrations, and
// writes belong to the external owner.
package stores
