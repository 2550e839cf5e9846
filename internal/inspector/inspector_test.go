package inspector

import (
	"net/http/httptest"
	"testing"

	"github.com/krobbi/fungus/internal/ir"
	"github.com/krobbi/fungus/internal/pcstate"
)

func TestHandleDumpWritesProgramString(t *testing.T) {
	program := ir.New(ir.StateLabel(pcstate.Default))
	s := New("127.0.0.1:0", program)

	req := httptest.NewRequest("GET", "/dump", nil)
	rec := httptest.NewRecorder()
	s.handleDump(rec, req)

	if got, want := rec.Body.String(), program.String()+"\n"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
}

func TestSetProgramReplacesDump(t *testing.T) {
	first := ir.New(ir.StateLabel(pcstate.Default))
	s := New("127.0.0.1:0", first)

	second := ir.New(ir.StateLabel(pcstate.Default))
	s.SetProgram(second)

	req := httptest.NewRequest("GET", "/dump", nil)
	rec := httptest.NewRecorder()
	s.handleDump(rec, req)

	if got, want := rec.Body.String(), second.String()+"\n"; got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestBroadcastWithNoClientsDoesNotPanic(t *testing.T) {
	program := ir.New(ir.StateLabel(pcstate.Default))
	s := New("127.0.0.1:0", program)
	s.Broadcast("recompile at 0,0")
}
