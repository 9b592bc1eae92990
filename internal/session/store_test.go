package session

import (
	"testing"

	"plume/internal/theme"
)

func TestLoadMissing(t *testing.T) {
	s := NewStore(t.TempDir())

	state, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if state != Default() {
		t.Errorf("missing file should yield defaults: %+v", state)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	want := State{Theme: "dark", ShowTagBar: false}
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestThemePreferenceAbsent(t *testing.T) {
	s := NewStore(t.TempDir())

	if _, ok := s.ThemePreference(); ok {
		t.Error("absence of a stored theme must be reported as no preference")
	}
}

func TestThemePreferenceRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.SaveThemePreference(theme.Dark); err != nil {
		t.Fatal(err)
	}
	m, ok := s.ThemePreference()
	if !ok || m != theme.Dark {
		t.Errorf("got %q, %v", m, ok)
	}
}

func TestThemePreferenceGarbageIgnored(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.Save(State{Theme: "sepia"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.ThemePreference(); ok {
		t.Error("unknown theme value must be treated as no preference")
	}
}

func TestSaveThemeKeepsOtherState(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.Save(State{ShowTagBar: false}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveThemePreference(theme.Light); err != nil {
		t.Fatal(err)
	}

	state, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if state.ShowTagBar {
		t.Error("saving the theme must not reset other state")
	}
	if state.Theme != "light" {
		t.Errorf("theme = %q", state.Theme)
	}
}
