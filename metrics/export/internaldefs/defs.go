package internaldefs

import (
	cxauth "github.com/Kevin-Shelton/verizon-cx-demo-sub000"
)

// CounterDef binds an engine counter to its exported name.
type CounterDef struct {
	ID   cxauth.MetricID
	Name string
	Help string
}

// HistogramDef binds an engine histogram to its exported name.
type HistogramDef struct {
	ID   cxauth.MetricID
	Name string
	Help string
}

// CounterDefs is the canonical counter naming table.
var CounterDefs = []CounterDef{
	{ID: cxauth.MetricLoginSuccess, Name: "cxauth_login_success_total", Help: "Successful login attempts."},
	{ID: cxauth.MetricLoginFailure, Name: "cxauth_login_failure_total", Help: "Rejected login attempts."},
	{ID: cxauth.MetricLoginValidationRejected, Name: "cxauth_login_validation_rejected_total", Help: "Login attempts rejected before any store access."},
	{ID: cxauth.MetricChallengeRequired, Name: "cxauth_challenge_required_total", Help: "Login attempts terminated pending a step-up challenge."},
	{ID: cxauth.MetricChallengePassed, Name: "cxauth_challenge_passed_total", Help: "Affirmative challenge verifications."},
	{ID: cxauth.MetricChallengeFailed, Name: "cxauth_challenge_failed_total", Help: "Failed or unavailable challenge verifications."},
	{ID: cxauth.MetricStoreUnavailable, Name: "cxauth_store_unavailable_total", Help: "Credential store lookups that failed for reasons other than not-found."},
	{ID: cxauth.MetricHandoffIssued, Name: "cxauth_handoff_issued_total", Help: "Minted partner handoff tokens."},
	{ID: cxauth.MetricHandoffFallback, Name: "cxauth_handoff_fallback_total", Help: "Partner launches degraded to an untokened URL."},
	{ID: cxauth.MetricTokenVerifyFailure, Name: "cxauth_token_verify_failure_total", Help: "Rejected token presentations."},
}

// HistogramDefs is the canonical histogram naming table.
var HistogramDefs = []HistogramDef{
	{ID: cxauth.MetricLoginLatency, Name: "cxauth_login_latency_seconds", Help: "Login latency histogram."},
}

// HistogramBounds are the upper bounds, in seconds, matching the engine's
// fixed bucket layout.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix are metric-name-safe renderings of HistogramBounds.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed
// layout.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// both exposition formats expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
