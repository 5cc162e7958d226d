package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Grid.Rows != 11 {
		t.Errorf("expected 11 grid rows, got %d", cfg.Grid.Rows)
	}
	if cfg.Audio.Grid.FFTSize != 32 || cfg.Audio.Visualizer.FFTSize != 128 {
		t.Errorf("expected fft sizes 32/128, got %d/%d", cfg.Audio.Grid.FFTSize, cfg.Audio.Visualizer.FFTSize)
	}
	if math.Abs(cfg.Camera.PitchLimit-math.Pi/3) > 1e-12 {
		t.Errorf("expected pitch limit pi/3, got %f", cfg.Camera.PitchLimit)
	}
	if cfg.Derived.KeyForward != 'W' || cfg.Derived.KeyBack != 'S' ||
		cfg.Derived.KeyLeft != 'A' || cfg.Derived.KeyRight != 'D' {
		t.Errorf("unexpected derived key codes: %+v", cfg.Derived)
	}
	if cfg.Derived.ScreenW32 != float32(cfg.Screen.Width) {
		t.Errorf("derived screen width %f does not match %d", cfg.Derived.ScreenW32, cfg.Screen.Width)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("grid:\n  rows: 4\ninput:\n  forward: up\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Rows != 4 {
		t.Errorf("expected overridden rows 4, got %d", cfg.Grid.Rows)
	}
	if cfg.Grid.ColStep != 0.3455 {
		t.Errorf("expected default col_step to survive, got %f", cfg.Grid.ColStep)
	}
	if cfg.Derived.KeyForward != 265 {
		t.Errorf("expected UP key code 265, got %d", cfg.Derived.KeyForward)
	}
}

func TestLoadRejectsBadFFTSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("audio:\n  grid:\n    fft_size: 48\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for non power-of-two fft_size")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestKeyCode(t *testing.T) {
	tests := []struct {
		name    string
		want    int32
		wantErr bool
	}{
		{"w", 87, false},
		{"D", 68, false},
		{"7", 55, false},
		{"left", 263, false},
		{"Space", 32, false},
		{"F13", 0, true},
		{"", 0, true},
	}
	for _, tc := range tests {
		got, err := KeyCode(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("KeyCode(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("KeyCode(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if again.Noise != cfg.Noise || again.Bob != cfg.Bob {
		t.Errorf("snapshot differs: %+v vs %+v", again.Noise, cfg.Noise)
	}
}
