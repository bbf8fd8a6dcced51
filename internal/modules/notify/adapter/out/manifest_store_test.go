package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	notifyout "worklog/internal/modules/notify/adapter/out"
	"worklog/internal/modules/notify/domain"
)

func writeManifestFile(t *testing.T, base, raw string) string {
	t.Helper()
	path := filepath.Join(base, "plugins.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write plugins.json: %v", err)
	}
	return path
}

func TestFileManifestStoreLoadMissingReturnsEmpty(t *testing.T) {
	t.Parallel()
	store := notifyout.NewFileManifestStore(filepath.Join(t.TempDir(), "plugins.json"))
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	raw := `{
  "plugins": [
    {
      "name": "reference",
      "version": "1.0.0",
      "binary": "reference/reference-plugin",
      "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
      "enabled": true,
      "capabilities": ["notify", "render"]
    }
  ]
}`
	store := notifyout.NewFileManifestStore(writeManifestFile(t, t.TempDir(), raw))
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	if !filepath.IsAbs(manifests[0].Binary) {
		t.Fatalf("expected absolute binary path, got %s", manifests[0].Binary)
	}
}

func TestFileManifestStoreDefaultsToNotifyCapability(t *testing.T) {
	t.Parallel()
	raw := `{
  "plugins": [
    {
      "name": "pager",
      "version": "0.3.0",
      "binary": "/opt/worklog/pager-plugin",
      "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
      "enabled": true
    }
  ]
}`
	store := notifyout.NewFileManifestStore(writeManifestFile(t, t.TempDir(), raw))
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	caps := manifests[0].Capabilities
	if len(caps) != 1 || caps[0] != domain.CapabilityNotify {
		t.Fatalf("capabilities = %v, want [notify]", caps)
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	raw := `{
  "plugins": [
    {
      "name": "reference",
      "version": "1.0.0",
      "binary": "/tmp/reference-plugin",
      "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
      "enabled": true,
      "capabilities": ["notify"],
      "unknown_field": true
    }
  ]
}`
	store := notifyout.NewFileManifestStore(writeManifestFile(t, t.TempDir(), raw))
	if _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
