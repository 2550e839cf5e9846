package errors

import "testing"

func TestNewUsageError(t *testing.T) {
	err := NewUsageError("a source file path is required")
	if err.Kind != UsageError {
		t.Errorf("Kind = %v, want %v", err.Kind, UsageError)
	}
	want := "UsageError: a source file path is required"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewSourceError(t *testing.T) {
	cause := &FungusError{Kind: UsageError, Message: "no such file"}
	err := NewSourceError("prog.bf", cause)
	if err.Kind != SourceError {
		t.Errorf("Kind = %v, want %v", err.Kind, SourceError)
	}
	want := "SourceError: prog.bf: UsageError: no such file"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewGridError(t *testing.T) {
	err := NewGridError("grid exceeds addressable range")
	if err.Kind != GridError {
		t.Errorf("Kind = %v, want %v", err.Kind, GridError)
	}
	want := "GridError: grid exceeds addressable range"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
