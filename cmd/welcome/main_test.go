package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/welcome/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "welcome.yaml")
	yaml := "clock: absolute\nhue: drift\nticks: 42\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{}
	addSceneFlags(cmd)
	if err := cmd.Flags().Parse([]string{"--preset", "calm", "--config", path, "--hue", "sparkle", "--seed", "9"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(cmd, []string{"yo"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Message != "yo" {
		t.Errorf("message: got %q", cfg.Message)
	}
	if cfg.Clock != "absolute" {
		t.Errorf("config file should override preset clock, got %q", cfg.Clock)
	}
	if cfg.Hue != "sparkle" {
		t.Errorf("flag should override config file hue, got %q", cfg.Hue)
	}
	if cfg.ColorSpeed != 0.000005 {
		t.Errorf("preset color speed lost, got %g", cfg.ColorSpeed)
	}
	if cfg.Ticks != 42 || cfg.Seed != 9 {
		t.Errorf("ticks/seed: got %d/%d", cfg.Ticks, cfg.Seed)
	}
}

func TestResolveConfigUnknownPreset(t *testing.T) {
	cmd := &cobra.Command{}
	addSceneFlags(cmd)
	if err := cmd.Flags().Parse([]string{"--preset", "nope"}); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd, nil); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestTraceAndExports(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "trace", "hi", "--ticks", "50", "--seed", "3", "--data", dir)
	if err != nil {
		t.Fatalf("trace: %v\n%s", err, out)
	}
	if !strings.Contains(out, "steps: 50") || !strings.Contains(out, "mean_spread") {
		t.Errorf("unexpected trace output:\n%s", out)
	}

	runs, err := storage.New(dir).List()
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected one stored run, got %d (%v)", len(runs), err)
	}
	id := runs[0].ID

	out, err = execute(t, "list", "--data", dir)
	if err != nil || !strings.Contains(out, id) {
		t.Errorf("list missing run %s: %v\n%s", id, err, out)
	}

	out, err = execute(t, "plot", id, "--data", dir)
	if err != nil || !strings.Contains(out, "dt per tick") {
		t.Errorf("plot failed: %v\n%s", err, out)
	}

	out, err = execute(t, "analyze", id, "--data", dir, "--glyph", "1")
	if err != nil || !strings.Contains(out, "LETTER") || !strings.Contains(out, `path of 'i'`) {
		t.Errorf("analyze failed: %v\n%s", err, out)
	}
	if _, err := execute(t, "analyze", id, "--data", dir, "--glyph", "5"); err == nil {
		t.Error("expected error for a letter index past the message")
	}

	jsonPath := filepath.Join(dir, "run.json")
	if _, err := execute(t, "export-json", id, "--data", dir, "--out", jsonPath); err != nil {
		t.Fatalf("export-json: %v", err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil || !strings.Contains(string(data), `"message": "hi"`) {
		t.Errorf("bad json export: %v\n%s", err, data)
	}

	out, err = execute(t, "svg", id, "--data", dir)
	if err != nil || strings.Count(out, "<path") != 2 {
		t.Errorf("svg export: %v\n%s", err, out)
	}
}

func TestSweep(t *testing.T) {
	out, err := execute(t, "sweep", "abc", "--runs", "3", "--ticks", "20", "--seed", "5", "--data", t.TempDir())
	if err != nil {
		t.Fatalf("sweep: %v\n%s", err, out)
	}
	for _, want := range []string{"SEED", "in_bounds", "slow_motion", "\n5 ", "\n7 "} {
		if !strings.Contains(out, want) {
			t.Errorf("sweep output missing %q:\n%s", want, out)
		}
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"calm", "classic", "frantic", "sparkle"} {
		if !strings.Contains(out, name) {
			t.Errorf("missing preset %s", name)
		}
	}
}

func TestListEmpty(t *testing.T) {
	out, err := execute(t, "list", "--data", t.TempDir())
	if err != nil || !strings.Contains(out, "no runs found") {
		t.Errorf("expected empty listing: %v\n%s", err, out)
	}
}

func TestTuneWritesPacing(t *testing.T) {
	out, err := execute(t, "tune", "ok", "--ticks", "40", "--seed", "2", "--target", "0.5")
	if err != nil {
		t.Fatalf("tune: %v\n%s", err, out)
	}
	for _, want := range []string{"pacing:", "tightness:", "curve:", "distance from target"} {
		if !strings.Contains(out, want) {
			t.Errorf("tune output missing %q:\n%s", want, out)
		}
	}
	if _, err := execute(t, "tune", "--target", "2"); err == nil {
		t.Error("expected error for target outside [0, 1]")
	}
}
