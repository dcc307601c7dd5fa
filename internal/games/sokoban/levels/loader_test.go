package levels

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

func TestBuiltinLevelsSolvable(t *testing.T) {
	levels, err := Builtin().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(levels) < 8 {
		t.Fatalf("expected at least 8 builtin levels, got %d", len(levels))
	}

	for _, lvl := range levels {
		t.Run(lvl.ID, func(t *testing.T) {
			if lvl.Name == "" {
				t.Error("builtin level should have a name")
			}
			scene, err := lvl.NewScene()
			if err != nil {
				t.Fatalf("NewScene failed: %v", err)
			}
			path, ok := core.Solve(scene, 0)
			if !ok {
				t.Fatal("builtin level should be solvable")
			}
			for _, d := range path {
				scene.Move(d)
			}
			if !scene.IsSolved() {
				t.Error("replayed solution did not solve the level")
			}
		})
	}
}

func TestBuiltinSortedByID(t *testing.T) {
	lvls, err := Builtin().LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(lvls); i++ {
		if lvls[i-1].ID >= lvls[i].ID {
			t.Errorf("ids not sorted: %q before %q", lvls[i-1].ID, lvls[i].ID)
		}
	}
}

func TestLoadAllSkipsInvalid(t *testing.T) {
	fsys := fstest.MapFS{
		"good.yaml": {Data: []byte("id: good\nname: Good\nrows:\n  - \"#####\"\n  - \"#iox#\"\n  - \"#####\"\n")},
		"plain.txt": {Data: []byte(";name: Plain\n#####\n#xoi#\n#####\n")},
		"open.sok":  {Data: []byte("#iox \n")},
		"empty.yml": {Data: []byte("id: empty\n")},
		"notes.md":  {Data: []byte("# not a level\n")},
	}
	loader := &Loader{FS: fsys, Root: "."}

	levels, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("expected 2 valid levels, got %d", len(levels))
	}
	if levels[0].ID != "good" || levels[1].ID != "plain" {
		t.Errorf("ids = %q, %q, want good, plain", levels[0].ID, levels[1].ID)
	}
	if levels[1].Title() != "Plain" {
		t.Errorf("Title() = %q, want Plain", levels[1].Title())
	}
	if levels[0].FilePath != "good.yaml" {
		t.Errorf("FilePath = %q, want good.yaml", levels[0].FilePath)
	}
}

func TestLoadFileErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"solved.txt": {Data: []byte("#####\n#iO #\n#####\n")},
	}
	loader := &Loader{FS: fsys, Root: "."}

	if _, err := loader.LoadFile("solved.txt"); err == nil {
		t.Error("already solved level should fail validation")
	}
	if _, err := loader.LoadFile("missing.yaml"); err == nil {
		t.Error("missing file should fail")
	}
}

func TestNewLoaderFromDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "pack")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte(";id: nested\n#######\n#i o x#\n#######\n")
	if err := os.WriteFile(filepath.Join(sub, "nested.txt"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(dir)
	lvl, err := loader.LoadByID("nested")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Title() != "nested" {
		t.Errorf("Title() = %q, want nested", lvl.Title())
	}

	if _, err := loader.LoadByID("nope"); err == nil {
		t.Error("unknown id should fail")
	}
}

func TestIndexOf(t *testing.T) {
	levels := []Level{{ID: "a"}, {ID: "b"}}
	if IndexOf(levels, "b") != 1 {
		t.Error("IndexOf(b) should be 1")
	}
	if IndexOf(levels, "z") != -1 {
		t.Error("IndexOf(z) should be -1")
	}
}
