package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chmac/tag-summary/internal/adapters/markdown"
)

func setupCache(t *testing.T, files map[string]string) (*Cache, string) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	vault := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(vault, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	c := NewCache(markdown.NewExtractor())
	if err := c.Open(vault); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, vault
}

func TestSyncFullAndLookup(t *testing.T) {
	c, vault := setupCache(t, map[string]string{
		"note.md": "---\ntags:\n  - fm\n---\n- task #todo\n  - detail\n",
		"b.md":    "plain #x\n",
	})

	stats, err := c.SyncFull()
	if err != nil {
		t.Fatalf("SyncFull failed: %v", err)
	}
	if stats.FilesScanned != 2 || stats.FilesAdded != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	info, err := os.Stat(filepath.Join(vault, "note.md"))
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}

	meta, err := c.Lookup("note.md", info.ModTime().Unix())
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if meta == nil {
		t.Fatal("expected a cache hit")
	}
	if len(meta.Tags) != 1 || meta.Tags[0].Name != "#todo" {
		t.Errorf("unexpected tags: %+v", meta.Tags)
	}
	if len(meta.Items) != 2 || !meta.Items[1].HasParent || meta.Items[1].Parent != 0 {
		t.Errorf("unexpected items: %+v", meta.Items)
	}
	if len(meta.FrontmatterTags) != 1 || meta.FrontmatterTags[0] != "#fm" {
		t.Errorf("unexpected frontmatter tags: %v", meta.FrontmatterTags)
	}
}

func TestLookup_Misses(t *testing.T) {
	c, vault := setupCache(t, map[string]string{"a.md": "alpha #x\n"})

	if _, err := c.SyncFull(); err != nil {
		t.Fatalf("SyncFull failed: %v", err)
	}

	meta, err := c.Lookup("unknown.md", 0)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if meta != nil {
		t.Error("expected a miss for an unknown path")
	}

	info, err := os.Stat(filepath.Join(vault, "a.md"))
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	meta, err = c.Lookup("a.md", info.ModTime().Unix()+1)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if meta != nil {
		t.Error("expected a miss when the mtime differs")
	}
}

func TestSyncIncremental(t *testing.T) {
	c, vault := setupCache(t, map[string]string{
		"keep.md": "keep #x\n",
		"gone.md": "gone #y\n",
	})

	if _, err := c.SyncFull(); err != nil {
		t.Fatalf("SyncFull failed: %v", err)
	}

	if err := os.Remove(filepath.Join(vault, "gone.md")); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(vault, "new.md"), []byte("new #z\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	stats, err := c.SyncIncremental()
	if err != nil {
		t.Fatalf("SyncIncremental failed: %v", err)
	}
	if stats.FilesAdded != 1 {
		t.Errorf("expected 1 added, got %+v", stats)
	}
	if stats.FilesDeleted != 1 {
		t.Errorf("expected 1 deleted, got %+v", stats)
	}

	meta, err := c.Lookup("gone.md", 0)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if meta != nil {
		t.Error("deleted file must not resolve from the cache")
	}
}

func TestSyncIncremental_UnchangedFilesUntouched(t *testing.T) {
	c, _ := setupCache(t, map[string]string{"a.md": "alpha #x\n"})

	if _, err := c.SyncFull(); err != nil {
		t.Fatalf("SyncFull failed: %v", err)
	}

	stats, err := c.SyncIncremental()
	if err != nil {
		t.Fatalf("SyncIncremental failed: %v", err)
	}
	if stats.FilesAdded != 0 || stats.FilesUpdated != 0 || stats.FilesDeleted != 0 {
		t.Errorf("expected a no-op sync, got %+v", stats)
	}
	if stats.FilesScanned != 1 {
		t.Errorf("expected 1 scanned, got %+v", stats)
	}
}

func TestNeedsFullRebuild(t *testing.T) {
	c, _ := setupCache(t, map[string]string{"a.md": "alpha\n"})

	if c.NeedsFullRebuild() {
		t.Error("fresh cache for the same vault must not need a rebuild")
	}

	c.vaultPath = c.vaultPath + "-moved"
	if !c.NeedsFullRebuild() {
		t.Error("a different vault path must force a rebuild")
	}
}

func TestDatabasePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	got := databasePath("/some/vault")
	dir := filepath.Dir(got)
	if dir != filepath.Join("/data", "tagsum") {
		t.Errorf("expected the tagsum data dir, got %s", dir)
	}
	if got == databasePath("/other/vault") {
		t.Error("different vaults must map to different database files")
	}
}
