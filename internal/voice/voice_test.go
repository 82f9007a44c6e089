package voice

import (
	"sort"
	"strings"
	"testing"
)

func TestLookupKnownPresets(t *testing.T) {
	for _, name := range []string{"default", "male", "female", "child", "robot", "glados", "korean"} {
		cfg, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if cfg.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, cfg.Name)
		}
		if cfg.Pitch <= 0 || cfg.Speed <= 0 || cfg.FormantShift <= 0 {
			t.Errorf("preset %q has non-positive core parameter: %+v", name, cfg)
		}
	}
}

func TestLookupCaseAndEmpty(t *testing.T) {
	cfg, err := Lookup("  GLaDOS ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if cfg.Name != "glados" {
		t.Errorf("got %q, want glados", cfg.Name)
	}

	cfg, err = Lookup("")
	if err != nil {
		t.Fatalf("Lookup(empty): %v", err)
	}
	if cfg.Name != DefaultName {
		t.Errorf("empty name resolved to %q", cfg.Name)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("baritone")
	if err == nil {
		t.Fatal("expected error for unknown voice")
	}
	if !strings.Contains(err.Error(), "baritone") {
		t.Errorf("error should name the requested voice: %v", err)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names not sorted: %v", names)
	}
	if len(names) != 7 {
		t.Errorf("catalog size = %d, want 7", len(names))
	}
}

func TestApplyOverrides(t *testing.T) {
	pitch := 95.0
	robot := 0.5
	cfg := Default().Apply(Overrides{Pitch: &pitch, Robotize: &robot})
	if cfg.Pitch != 95 || cfg.Robotize != 0.5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Speed != 1.0 || cfg.FormantShift != 1.0 {
		t.Errorf("unset fields must keep preset values: %+v", cfg)
	}
}

func TestNormalize(t *testing.T) {
	cfg := Config{Breathiness: 1.5, Robotize: -0.2, ReverbMix: 2}.Normalize()
	if cfg.Pitch != 120 || cfg.Speed != 1 || cfg.FormantShift != 1 {
		t.Errorf("zero core parameters should take defaults: %+v", cfg)
	}
	if cfg.Breathiness != 1 || cfg.Robotize != 0 || cfg.ReverbMix != 1 {
		t.Errorf("mix parameters not clamped: %+v", cfg)
	}
}

func TestPresetsAreCopies(t *testing.T) {
	a, _ := Lookup("robot")
	a.Pitch = 1
	b, _ := Lookup("robot")
	if b.Pitch == 1 {
		t.Fatal("mutating a looked-up config must not change the catalog")
	}
}
