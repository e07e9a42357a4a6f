// Package cli provides the folio command line interface.
//
// Commands are package-level cobra commands registered in init functions.
// Services are held in package variables populated by the bootstrap hook
// before a command runs, which lets tests substitute mocks directly.
package cli
