// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. Apart from the ports and domain
// they only rely on golang.org/x/sync for bounded fan-out.
package services
