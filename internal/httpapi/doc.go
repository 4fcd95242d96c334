// Package httpapi carries the HTTP surface of the demo property: the
// login endpoint, the portal handoff endpoints, health, and metrics.
//
// Handlers translate HTTP into engine calls and engine outcomes back
// into wire shapes. No authentication decision is made here.
package httpapi
