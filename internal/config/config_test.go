package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME and the working directory at empty temp dirs so the
// search order only sees files the test writes.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	isolate(t)

	cfg, err := LoadWalk("")
	if err != nil {
		t.Fatalf("LoadWalk() failed: %v", err)
	}
	if cfg != DefaultWalkConfig() {
		t.Errorf("embedded defaults differ from DefaultWalkConfig():\n%+v\n%+v", cfg, DefaultWalkConfig())
	}
	if cfg.PlayerHeight() != 121 {
		t.Errorf("PlayerHeight() = %d, expected 121", cfg.PlayerHeight())
	}
}

func TestLoadWalkSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", WalkFile), "physics:\n  running_speed: 5\n")
	cfg, err := LoadWalk("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.RunningSpeed != 5 {
		t.Errorf("local config: running_speed = %d, expected 5", cfg.Physics.RunningSpeed)
	}
	if cfg.Physics.JumpSpeed != -25 {
		t.Errorf("missing keys should keep defaults, jump_speed = %d", cfg.Physics.JumpSpeed)
	}

	writeFile(t, filepath.Join(home, ".walkthedog", "configs", WalkFile), "physics:\n  running_speed: 7\n")
	cfg, _ = LoadWalk("")
	if cfg.Physics.RunningSpeed != 7 {
		t.Errorf("user config should win over local: running_speed = %d", cfg.Physics.RunningSpeed)
	}

	custom := filepath.Join(t.TempDir(), "mine.yaml")
	writeFile(t, custom, "physics:\n  running_speed: 2\n")
	cfg, _ = LoadWalk(custom)
	if cfg.Physics.RunningSpeed != 2 {
		t.Errorf("custom path should win: running_speed = %d", cfg.Physics.RunningSpeed)
	}
	if got := ResolveWalkPath(""); got != filepath.Join(home, ".walkthedog", "configs", WalkFile) {
		t.Errorf("ResolveWalkPath() = %q", got)
	}
}

func TestLoadWalkErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "physics: [\n"},
		{"positive jump speed", "physics:\n  jump_speed: 5\n"},
		{"floor below world", "character:\n  floor: 700\n"},
		{"zero frames", "character:\n  frames:\n    sliding: 0\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name+".yaml")
			writeFile(t, path, tc.content)
			if _, err := LoadWalk(path); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := LoadWalk(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom file")
	}
}

func TestInvalidLocalConfigFallsBack(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, "configs", WalkFile), "physics:\n  gravity: -1\n")

	cfg, err := LoadWalk("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.Gravity != 1 {
		t.Errorf("invalid local config should be skipped, gravity = %d", cfg.Physics.Gravity)
	}
	if got := ResolveWalkPath(""); got != filepath.Join("configs", WalkFile) {
		t.Errorf("ResolveWalkPath() = %q", got)
	}
}

func TestApplyWalkPreset(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		speed  int16
	}{
		{DifficultyEasy, 3},
		{DifficultyNormal, 4},
		{DifficultyHard, 6},
		{ParseDifficulty("bogus"), 4},
	}
	for _, tc := range tests {
		cfg := DefaultWalkConfig()
		ApplyWalkPreset(&cfg, tc.preset)
		if cfg.Physics.RunningSpeed != tc.speed {
			t.Errorf("preset %q: running_speed = %d, expected %d", tc.preset, cfg.Physics.RunningSpeed, tc.speed)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q produced invalid tuning: %v", tc.preset, err)
		}
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), WalkFile)
	writeFile(t, path, "physics:\n  running_speed: 4\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rx, err := Watch(ctx, path, nil)
	if err != nil {
		t.Fatalf("Watch() failed: %v", err)
	}

	writeFile(t, path, "physics:\n  running_speed: 9\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-rx:
			if cfg.Physics.RunningSpeed == 9 {
				cancel()
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestLatest(t *testing.T) {
	rx := make(chan WalkConfig, 1)
	if _, ok := Latest(rx); ok {
		t.Error("empty channel should yield nothing")
	}

	cfg := DefaultWalkConfig()
	cfg.Physics.RunningSpeed = 8
	publish(rx, DefaultWalkConfig())
	publish(rx, cfg)

	got, ok := Latest(rx)
	if !ok || got.Physics.RunningSpeed != 8 {
		t.Errorf("Latest() = %+v, %v; expected the newest config", got.Physics, ok)
	}
}
