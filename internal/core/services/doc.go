// Package services implements the driving port interfaces.
// Services contain the catalog paging, search and session logic and
// orchestrate calls to driven ports (adapters).
//
// Services depend only on domain types and port interfaces, so the
// remote client and the flag store can be swapped for fakes in tests.
package services
