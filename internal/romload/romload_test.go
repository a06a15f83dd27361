package romload

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rom.bin")
	want := []uint8{0x4C, 0x00, 0xFF}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d = 0x%02X, want 0x%02X", i, got[i], want[i])
		}
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/path/rom.bin"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadAtPlacesBytesAtOffset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rom.bin")
	if err := os.WriteFile(path, []uint8{0xAA, 0xBB}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := LoadAt(path, 16, 4)
	if err != nil {
		t.Fatalf("LoadAt: %v", err)
	}
	if len(out) != 16 {
		t.Fatalf("len(out) = %d, want 16", len(out))
	}
	if out[4] != 0xAA || out[5] != 0xBB {
		t.Fatalf("bytes at offset = %02X %02X, want AA BB", out[4], out[5])
	}
}

func TestLoadAtRejectsOverflow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rom.bin")
	if err := os.WriteFile(path, make([]uint8, 10), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadAt(path, 8, 0); err == nil {
		t.Fatal("expected error when ROM does not fit in segment")
	}
}
