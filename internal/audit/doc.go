// Package audit defines the audit event model and sink implementations
// used by the engine's async dispatcher.
//
// # What this package must NOT do
//
//   - Import cxauth or any sibling package.
//   - Block the request path; blocking behavior belongs to the dispatcher
//     policy, not the sinks.
package audit
