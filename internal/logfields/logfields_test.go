package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

func TestHelpersProduceExpectedKeys(t *testing.T) {
	cases := []struct {
		attr slog.Attr
		key  string
	}{
		{RunID("r-1"), KeyRunID},
		{Job("payments"), KeyJob},
		{Kind("maven-reactor"), KeyKind},
		{Product("payments"), KeyProduct},
		{Outcome("published"), KeyOutcome},
		{Decision("approved"), KeyDecision},
		{DurationMS(12.5), KeyDurationMS},
		{Error(errors.New("boom")), KeyError},
	}
	for _, c := range cases {
		if c.attr.Key != c.key {
			t.Errorf("expected key %q, got %q", c.key, c.attr.Key)
		}
	}
}

func TestErrorNil(t *testing.T) {
	attr := Error(nil)
	if attr.Value.String() != "" {
		t.Errorf("nil error should produce empty value, got %q", attr.Value.String())
	}
}
