package module

import "testing"

type auditPorts struct {
	Path string
	Keep int
}

func TestRegistry_RegisterThenPortsAs(t *testing.T) {
	Reset()

	want := auditPorts{Path: "audit_incitement.jsonl", Keep: 50}
	Register("audit", want)

	got, ok := PortsAs[auditPorts]("audit")
	if !ok {
		t.Fatal("expected ok for registered name")
	}
	if got != want {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestRegistry_MissingNameReturnsZero(t *testing.T) {
	Reset()

	got, ok := PortsAs[auditPorts]("review")
	if ok {
		t.Fatal("expected ok=false for missing name")
	}
	if got != (auditPorts{}) {
		t.Fatalf("expected zero value got=%v", got)
	}
}

func TestRegistry_TypeMismatchReturnsFalse(t *testing.T) {
	Reset()

	Register("audit", auditPorts{Path: "a.jsonl"})
	if _, ok := PortsAs[string]("audit"); ok {
		t.Fatal("expected ok=false for type mismatch")
	}
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	Reset()

	Register("audit", auditPorts{Path: "old.jsonl"})
	Register("audit", auditPorts{Path: "new.jsonl"})

	got, ok := PortsAs[auditPorts]("audit")
	if !ok || got.Path != "new.jsonl" {
		t.Fatalf("expected overwritten value got=%v ok=%v", got, ok)
	}
}

func TestRegistry_ResetClears(t *testing.T) {
	Reset()

	Register("audit", auditPorts{Path: "a.jsonl"})
	Reset()

	if _, ok := PortsAs[auditPorts]("audit"); ok {
		t.Fatal("expected ok=false after reset")
	}
}
