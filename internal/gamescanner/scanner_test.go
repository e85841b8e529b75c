package gamescanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMap(t *testing.T, root, name string, diffs int) {
	t.Helper()
	dir := filepath.Join(root, name, WordsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, name, GraphFile), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < diffs; i++ {
		file := filepath.Join(dir, "diff"+string(rune('0'+i))+".txt")
		if err := os.WriteFile(file, []byte("CAT\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanDataDirectory(t *testing.T) {
	root := t.TempDir()
	writeMap(t, root, "map1", 5)
	writeMap(t, root, "map0", 5)
	writeMap(t, root, "map2", 3) // incomplete
	writeMap(t, root, "atlases", 5)
	if err := os.WriteFile(filepath.Join(root, "map3"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	maps, err := ScanDataDirectory(root)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(maps) != 2 {
		t.Fatalf("Expected 2 maps, got %d: %+v", len(maps), maps)
	}
	if maps[0].Index != 0 || maps[1].Index != 1 {
		t.Errorf("Expected maps sorted by index, got %+v", maps)
	}

	if m, ok := Find(maps, 1); !ok || m.Dir != "map1" {
		t.Errorf("Expected to find map1, got %+v", m)
	}
	if _, ok := Find(maps, 2); ok {
		t.Error("Expected incomplete map2 to be skipped")
	}
}

func TestScanMissingDirectory(t *testing.T) {
	if _, err := ScanDataDirectory(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing data directory")
	}
}

func TestMapIndex(t *testing.T) {
	tests := []struct {
		name string
		idx  int
		ok   bool
	}{
		{"map0", 0, true},
		{"map12", 12, true},
		{"map", 0, false},
		{"mapX", 0, false},
		{"level0", 0, false},
	}
	for _, tt := range tests {
		idx, ok := mapIndex(tt.name)
		if idx != tt.idx || ok != tt.ok {
			t.Errorf("mapIndex(%q): Expected (%d, %v), got (%d, %v)", tt.name, tt.idx, tt.ok, idx, ok)
		}
	}
}
