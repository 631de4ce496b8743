// Package query translates raw HTTP query parameters into a storage-agnostic
// description of a list query: filter conditions, sort order, field
// projection, and pagination. The translation is deliberately lenient —
// malformed input degrades to documented defaults instead of failing, since
// the storage engine is the authoritative validator for the resulting query.
package query
