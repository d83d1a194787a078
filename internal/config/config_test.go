package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "vault: /notes\ninclude_children: false\nremove_tags: true\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Vault != "/notes" {
		t.Errorf("expected vault /notes, got %q", cfg.Vault)
	}
	if cfg.IncludeChildren == nil || *cfg.IncludeChildren {
		t.Error("expected include_children false")
	}
	if cfg.RemoveTags == nil || !*cfg.RemoveTags {
		t.Error("expected remove_tags true")
	}
	if cfg.IncludeLink != nil {
		t.Error("absent key must stay nil")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.Vault != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeConfig(t, "vault: [unclosed\n")

	if _, err := LoadFile(path); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestVaultPath(t *testing.T) {
	t.Run("env wins", func(t *testing.T) {
		t.Setenv("TAGSUM_VAULT", "/from-env")
		cfg := Config{Vault: "/from-config"}
		if got := cfg.VaultPath(); got != "/from-env" {
			t.Errorf("expected /from-env, got %s", got)
		}
	})

	t.Run("config over default", func(t *testing.T) {
		t.Setenv("TAGSUM_VAULT", "")
		cfg := Config{Vault: "/from-config"}
		if got := cfg.VaultPath(); got != "/from-config" {
			t.Errorf("expected /from-config, got %s", got)
		}
	})

	t.Run("built-in default", func(t *testing.T) {
		t.Setenv("TAGSUM_VAULT", "")
		if got := (Config{}).VaultPath(); got != DefaultVaultPath {
			t.Errorf("expected %s, got %s", DefaultVaultPath, got)
		}
	})
}

func TestOptions(t *testing.T) {
	f := false
	tr := true

	opts := (Config{}).Options()
	if !opts.IncludeChildren || !opts.IncludeLink {
		t.Errorf("zero config must keep defaults, got %+v", opts)
	}

	opts = (Config{IncludeChildren: &f, IncludeCallout: &tr}).Options()
	if opts.IncludeChildren {
		t.Error("expected include_children override to false")
	}
	if !opts.IncludeCallout {
		t.Error("expected include_callout override to true")
	}
	if !opts.IncludeLink {
		t.Error("untouched toggle must keep its default")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	if got := DefaultPath(); got != filepath.Join("/cfg", "tagsum", "config.yaml") {
		t.Errorf("unexpected config path: %s", got)
	}
}
