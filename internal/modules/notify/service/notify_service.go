package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"worklog/internal/modules/notify/domain"
	"worklog/internal/modules/notify/dto"
	notifyout "worklog/internal/modules/notify/port/out"
)

type NotifyService struct {
	store notifyout.ManifestStore
	host  notifyout.Host
}

func NewNotifyService(store notifyout.ManifestStore, host notifyout.Host) *NotifyService {
	return &NotifyService{store: store, host: host}
}

func (s *NotifyService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *NotifyService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *NotifyService) Send(ctx context.Context, message domain.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}
	manifest, err := s.pickRunnable(ctx, domain.CapabilityNotify)
	if err != nil {
		return err
	}
	return s.host.Notify(ctx, manifest, message)
}

func (s *NotifyService) Render(ctx context.Context, layoutJSON string) ([]byte, error) {
	manifest, err := s.pickRunnable(ctx, domain.CapabilityRender)
	if err != nil {
		return nil, err
	}
	return s.host.Render(ctx, manifest, layoutJSON)
}

func (s *NotifyService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

// pickRunnable returns the first enabled manifest carrying capability.
func (s *NotifyService) pickRunnable(ctx context.Context, capability domain.Capability) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	for _, manifest := range manifests {
		if !manifest.Enabled || !manifest.HasCapability(capability) {
			continue
		}
		if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
			return domain.Manifest{}, err
		}
		return manifest, nil
	}
	return domain.Manifest{}, fmt.Errorf("%w: capability %s", domain.ErrNoPlugin, capability)
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
