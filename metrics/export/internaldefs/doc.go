// Package internaldefs holds the shared metric naming table and bucket
// helpers used by the exporter packages. Exporters must agree on names
// and bucket layout so the same counter reads identically over OTel and
// Prometheus.
package internaldefs
