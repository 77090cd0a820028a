package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/wallrunner/locomotion"
)

func useDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestEmbeddedTuningMatchesDefaults(t *testing.T) {
	useDir(t, t.TempDir())

	cfg, err := LoadTuning("")
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if cfg != locomotion.DefaultConfig() {
		t.Fatalf("embedded tuning differs from defaults:\n got %+v\nwant %+v", cfg, locomotion.DefaultConfig())
	}
}

func TestDecodeTuning(t *testing.T) {
	cfg, err := DecodeTuning([]byte("movement:\n  walk_speed: 3\nwall_run:\n  cam_tilt: 15\n"))
	if err != nil {
		t.Fatalf("DecodeTuning: %v", err)
	}
	if cfg.Movement.WalkSpeed != 3 || cfg.WallRun.CamTilt != 15 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Movement.SprintSpeed != locomotion.DefaultConfig().Movement.SprintSpeed {
		t.Fatalf("omitted field lost its default")
	}

	_, err = DecodeTuning([]byte("movement:\n  crouch_size: 2\n"))
	if !errors.Is(err, locomotion.ErrInvalidConfig) {
		t.Fatalf("DecodeTuning = %v, want ErrInvalidConfig", err)
	}

	if _, err := DecodeTuning([]byte("movement: [")); err == nil {
		t.Fatalf("DecodeTuning accepted malformed yaml")
	}
}

func TestDiskTuningShadowsEmbedded(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "tuning.yaml"), []byte("movement:\n  walk_speed: 4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadTuning("prefabs/tuning.yaml")
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if cfg.Movement.WalkSpeed != 4 {
		t.Fatalf("walk speed = %g, want 4 from disk", cfg.Movement.WalkSpeed)
	}
	if _, ok := ModTime("tuning.yaml"); !ok {
		t.Fatalf("ModTime missed the disk copy")
	}
}

func TestLoadTuningMissing(t *testing.T) {
	useDir(t, t.TempDir())
	if _, err := LoadTuning("nope.yaml"); err == nil {
		t.Fatalf("LoadTuning succeeded for a missing file")
	}
}

func TestScripts(t *testing.T) {
	useDir(t, t.TempDir())

	names := Scripts()
	want := map[string]bool{"strafe": true, "walk": true, "wallrun": true}
	for _, n := range names {
		delete(want, n)
	}
	if len(want) != 0 {
		t.Fatalf("Scripts() = %v, missing %v", names, want)
	}

	for _, name := range []string{"walk", "walk.tengo", "scripts/walk.tengo", "prefabs/scripts/walk.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Fatalf("LoadScript(%q): %v", name, err)
		}
	}
}
