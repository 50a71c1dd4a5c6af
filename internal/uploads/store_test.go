package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir())
}

func TestSaveContentAddressed(t *testing.T) {
	store := setupStore(t)

	file, err := store.Save("general", "logo.png", strings.NewReader("fake png bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasSuffix(file.Filename, ".png") {
		t.Errorf("expected .png suffix, got %s", file.Filename)
	}
	// BLAKE3 hash is 64 hex chars
	base := strings.TrimSuffix(file.Filename, ".png")
	if len(base) != 64 {
		t.Errorf("expected 64-char hash name, got %d chars", len(base))
	}
	if file.URL != "/uploads/general/"+file.Filename {
		t.Errorf("unexpected URL: %s", file.URL)
	}
	if file.Size != int64(len("fake png bytes")) {
		t.Errorf("unexpected size: %d", file.Size)
	}

	// Same content maps to the same stored file
	again, err := store.Save("general", "other-name.png", strings.NewReader("fake png bytes"))
	if err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if again.Filename != file.Filename {
		t.Errorf("same content produced different names: %s vs %s", file.Filename, again.Filename)
	}

	files, err := store.List("general")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected 1 stored file, got %d", len(files))
	}
}

func TestSaveRejectsBadInput(t *testing.T) {
	store := setupStore(t)

	if _, err := store.Save("no-such-category", "a.png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for unknown category")
	}
	if _, err := store.Save("general", "malware.exe", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for disallowed extension")
	}
	if _, err := store.Save("general", "noext", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for missing extension")
	}
	if _, err := store.Save("general", "empty.png", strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty upload")
	}
}

func TestSaveEnforcesSizeCap(t *testing.T) {
	store := setupStore(t)

	big := strings.NewReader(strings.Repeat("a", 10*1024*1024+1))
	if _, err := store.Save("general", "big.png", big); err == nil {
		t.Fatal("expected error for oversized upload")
	}
}

func TestListEmptyCategory(t *testing.T) {
	store := setupStore(t)

	files, err := store.List("sleep")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty listing, got %d", len(files))
	}

	if _, err := store.List("bogus"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestDelete(t *testing.T) {
	store := setupStore(t)

	file, err := store.Save("signatures", "sig.png", strings.NewReader("signature"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete("signatures", file.Filename); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	files, _ := store.List("signatures")
	if len(files) != 0 {
		t.Errorf("expected no files after delete, got %d", len(files))
	}

	if err := store.Delete("signatures", file.Filename); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestDeleteRejectsTraversal(t *testing.T) {
	store := setupStore(t)

	// Plant a file outside the category to prove it cannot be reached
	outside := filepath.Join(store.root, "secret.txt")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to plant file: %v", err)
	}

	for _, name := range []string{
		"../secret.txt",
		"..%2fsecret.txt",
		"sub/secret.txt",
		"..",
		"",
	} {
		if err := store.Delete("general", name); err == nil {
			t.Errorf("traversal name %q accepted", name)
		}
	}

	if _, err := os.Stat(outside); err != nil {
		t.Error("planted file disappeared")
	}
}
