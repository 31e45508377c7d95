// Package domain defines the core business entities for Eredità.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document / Snapshot: An extracted document and the immutable scan bundle
//   - HeirRecord / AssetRecord: Facts parsed from document text
//   - ReportSection, Note, InterviewEntry, ChatMessage: Persisted collections
//   - Tool invocations: The typed mutation operations the model may request
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
