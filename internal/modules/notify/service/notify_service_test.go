package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"worklog/internal/modules/notify/domain"
)

type stubManifestStore struct {
	manifests []domain.Manifest
}

func (s stubManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type recordingHost struct {
	messages []domain.Message
	rendered []string
}

func (h *recordingHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }

func (h *recordingHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{}, nil
}

func (h *recordingHost) Notify(_ context.Context, _ domain.Manifest, message domain.Message) error {
	h.messages = append(h.messages, message)
	return nil
}

func (h *recordingHost) Render(_ context.Context, _ domain.Manifest, layoutJSON string) ([]byte, error) {
	h.rendered = append(h.rendered, layoutJSON)
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func writeBinary(t *testing.T) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plugin-bin")
	payload := []byte("#!/bin/sh\n")
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	sum := sha256.Sum256(payload)
	return path, hex.EncodeToString(sum[:])
}

func TestSendWithoutPluginReturnsErrNoPlugin(t *testing.T) {
	t.Parallel()

	svc := NewNotifyService(stubManifestStore{}, &recordingHost{})
	err := svc.Send(context.Background(), domain.Message{Kind: domain.TargetUser, Target: "u1", Body: "hi"})
	if !errors.Is(err, domain.ErrNoPlugin) {
		t.Fatalf("want ErrNoPlugin, got %v", err)
	}
}

func TestSendRoutesThroughFirstCapablePlugin(t *testing.T) {
	t.Parallel()

	binary, sum := writeBinary(t)
	store := stubManifestStore{manifests: []domain.Manifest{
		{Name: "disabled", Version: "1", Binary: binary, SHA256: sum, Enabled: false, Capabilities: []domain.Capability{domain.CapabilityNotify}},
		{Name: "render-only", Version: "1", Binary: binary, SHA256: sum, Enabled: true, Capabilities: []domain.Capability{domain.CapabilityRender}},
		{Name: "notifier", Version: "1", Binary: binary, SHA256: sum, Enabled: true, Capabilities: []domain.Capability{domain.CapabilityNotify}},
	}}
	host := &recordingHost{}
	svc := NewNotifyService(store, host)

	err := svc.Send(context.Background(), domain.Message{Kind: domain.TargetChannel, Target: "announcements", Body: "due tomorrow"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(host.messages) != 1 {
		t.Fatalf("host received %d messages, want 1", len(host.messages))
	}
}

func TestSendRejectsChecksumMismatch(t *testing.T) {
	t.Parallel()

	binary, _ := writeBinary(t)
	store := stubManifestStore{manifests: []domain.Manifest{
		{Name: "tampered", Version: "1", Binary: binary, SHA256: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Enabled: true, Capabilities: []domain.Capability{domain.CapabilityNotify}},
	}}
	svc := NewNotifyService(store, &recordingHost{})

	err := svc.Send(context.Background(), domain.Message{Kind: domain.TargetUser, Target: "u1", Body: "hi"})
	if !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("want checksum mismatch, got %v", err)
	}
}
