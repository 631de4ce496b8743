// Package mocks provides hand-rolled test doubles for the service and
// store interfaces. Each mock exposes optional function fields for
// per-test behavior plus default return values for the common cases.
package mocks
