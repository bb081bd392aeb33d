package dialect

import (
	"slices"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	Register(&Dialect{Name: "TestOnly", DefaultSchema: "main"})

	d, ok := Get("testonly")
	if !ok {
		t.Fatal("registered dialect not found")
	}
	if d.DefaultSchema != "main" {
		t.Errorf("DefaultSchema = %q, want main", d.DefaultSchema)
	}

	// Lookup folds case.
	if _, ok := Get("TESTONLY"); !ok {
		t.Error("lookup must be case-insensitive")
	}
	if _, ok := Get("unregistered"); ok {
		t.Error("unregistered dialect must not resolve")
	}
}

func TestMustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGet on an unknown dialect must panic")
		}
	}()
	MustGet("definitely-not-registered")
}

func TestListSorted(t *testing.T) {
	Register(&Dialect{Name: "zzz-probe"})
	Register(&Dialect{Name: "aaa-probe"})

	names := List()
	if !slices.IsSorted(names) {
		t.Errorf("List() = %v, want sorted", names)
	}
	if !slices.Contains(names, "aaa-probe") || !slices.Contains(names, "zzz-probe") {
		t.Errorf("List() = %v, missing registered probes", names)
	}
}

func TestIdentifierCaseApply(t *testing.T) {
	tests := []struct {
		c        IdentifierCase
		in       string
		expected string
	}{
		{CasePreserve, "MixedName", "MixedName"},
		{CaseLower, "MixedName", "mixedname"},
		{CaseUpper, "MixedName", "MIXEDNAME"},
	}
	for _, tt := range tests {
		if got := tt.c.Apply(tt.in); got != tt.expected {
			t.Errorf("Apply(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestDefaultDelimiterPolicy(t *testing.T) {
	d := &Dialect{Name: "plain"}
	pol := d.NewDelimiterPolicy()
	if pol == nil {
		t.Fatal("nil policy")
	}
	if !pol.CurrentDelimiter().IsStandard() {
		t.Error("default policy must start with the standard terminator")
	}
}
