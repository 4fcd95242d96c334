// Package prometheus renders the engine's metrics in Prometheus text
// exposition format without depending on the Prometheus client library.
//
// [PrometheusExporter.Handler] serves a scrape endpoint;
// [PrometheusExporter.Render] returns the exposition text directly.
//
// # What this package must NOT do
//
//   - Keep state between scrapes — every render reads a fresh snapshot.
//   - Mutate engine state.
package prometheus
