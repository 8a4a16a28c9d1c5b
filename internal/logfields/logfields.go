package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyJob        = "job"
	KeyKind       = "kind"
	KeyProduct    = "product"
	KeyOutcome    = "outcome"
	KeyDecision   = "decision"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Job(name string) slog.Attr       { return slog.String(KeyJob, name) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Product(p string) slog.Attr      { return slog.String(KeyProduct, p) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Decision(d string) slog.Attr     { return slog.String(KeyDecision, d) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
