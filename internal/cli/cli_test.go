package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pawlygon/shapekit/pkg/scene"
	"github.com/pawlygon/shapekit/pkg/shapekey"
)

func TestStateDirUsesXDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")
	dir, err := stateDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg-state", appName) {
		t.Errorf("stateDir() = %s", dir)
	}
}

func TestConfigDirUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	dir, err := configDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg-config", appName) {
		t.Errorf("configDir() = %s", dir)
	}
}

func TestLoadRostersDefaultsWhenNoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)

	rosters, err := c.loadRosters()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rosters.List("Visemes"); !ok {
		t.Error("defaults missing the Visemes list")
	}
}

func TestLoadRostersMergesConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	appDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatal(err)
	}
	config := []byte("[[list]]\nname = \"Custom\"\nkeys = [\"A\", \"B\"]\n")
	if err := os.WriteFile(filepath.Join(appDir, "rosters.toml"), config, 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	rosters, err := c.loadRosters()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rosters.List("Custom"); !ok {
		t.Error("merged set missing the configured Custom list")
	}
	if _, ok := rosters.List("Visemes"); !ok {
		t.Error("merged set dropped the built-in Visemes list")
	}
}

func TestLoadRostersExplicitPathMustExist(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.rosterPath = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := c.loadRosters(); err == nil {
		t.Error("loadRosters() with missing explicit path returned nil error")
	}
}

func writeTestScene(t *testing.T) string {
	t.Helper()
	sc := &scene.Scene{
		Objects: []*scene.Object{{
			Name:        "Face",
			VertexCount: 2,
			Keys: []*shapekey.Key{
				{Name: "Basis"},
				{Name: "A.old"},
				{Name: "B"},
			},
		}},
	}
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := scene.WriteFile(sc, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTidyCommandWritesSceneBack(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := writeTestScene(t)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"tidy", path})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("tidy returned error: %v", err)
	}

	sc, err := scene.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	keys := sc.Objects[0].Keys
	if keys[len(keys)-1].Name != "A.old" {
		t.Errorf("disposable key not at bottom after tidy: %v", keyOrder(sc))
	}
}

func TestCheckThenFillCommands(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := writeTestScene(t)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	root.SetArgs([]string{"check", path, "--list", "Visemes"})
	if err := root.Execute(); err != nil {
		t.Fatalf("check returned error: %v", err)
	}

	root.SetArgs([]string{"fill", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("fill returned error: %v", err)
	}

	sc, err := scene.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := sc.Objects[0].Collection()
	if err != nil {
		t.Fatal(err)
	}
	if !c2.Has("vrc.v_sil") {
		t.Errorf("fill did not create viseme keys: %v", keyOrder(sc))
	}
}

func keyOrder(sc *scene.Scene) []string {
	names := make([]string, len(sc.Objects[0].Keys))
	for i, k := range sc.Objects[0].Keys {
		names[i] = k.Name
	}
	return names
}
