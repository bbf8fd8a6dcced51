package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"worklog/internal/modules/notify/domain"
	notifyout "worklog/internal/modules/notify/port/out"
)

// FileManifestStore reads collaborator manifests from a plugins.json
// placed next to the plugin binaries.
type FileManifestStore struct {
	basePath string
	path     string
}

func NewFileManifestStore(path string) notifyout.ManifestStore {
	return &FileManifestStore{basePath: filepath.Dir(path), path: path}
}

// manifestFile is the on-disk shape. Relative binary paths resolve
// against the file's directory.
type manifestFile struct {
	Plugins []domain.Manifest `json:"plugins"`
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open plugin manifest file: %w", err)
	}
	defer f.Close()

	var file manifestFile
	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode plugin manifest file: %w", err)
	}
	manifests := file.Plugins
	for i := range manifests {
		// Notification is the common case; manifests that stay
		// silent about capabilities get it.
		if len(manifests[i].Capabilities) == 0 {
			manifests[i].Capabilities = []domain.Capability{domain.CapabilityNotify}
		}
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.basePath, manifests[i].Binary))
		}
	}
	return manifests, nil
}
