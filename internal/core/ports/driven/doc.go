// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Remote file store (listing, download, upload)
//   - Normaliser / NormaliserRegistry: Per-extension text extraction
//   - CollectionStore: Whole-blob persistence of the mutable collections
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Conversation and tool use. Without it, chat is disabled
//     with an explanatory message; documents and reports still render.
//   - ChangeWatcher: Push-style change hints from a store. Without it, the
//     poller relies on fingerprint polling alone.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
