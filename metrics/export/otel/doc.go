// Package otel provides OpenTelemetry metric exporter bindings for the
// engine's counters and latency histogram.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each
// engine counter and Int64ObservableGauge per histogram bucket. A single
// callback reads the engine's metrics snapshot on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate engine state.
package otel
