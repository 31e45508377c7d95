// Package services implements the driving port interfaces.
// Services contain the core business logic (scanning, fact parsing,
// context assembly, tool dispatch, the conversation loop) and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO dependencies.
package services
