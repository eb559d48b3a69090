package storage

import (
	"bytes"
	"fmt"
	"path"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
	"gopkg.in/yaml.v3"
)

// Manifest lists the archived files of one provisioning run. It is archived itself
// as a config artifact, and its id is what restore takes.
type Manifest struct {
	Domain    string               `yaml:"domain"`
	Operation interfaces.Operation `yaml:"operation"`
	Files     []ManifestEntry      `yaml:"files"`
}

type ManifestEntry struct {
	Path string                  `yaml:"path"`
	Kind interfaces.ArtifactKind `yaml:"kind"`
	ID   interfaces.ArtifactID   `yaml:"id"`
}

// Bytes encodes the manifest. Equal manifests encode identically.
func (m *Manifest) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("could not encode manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("could not encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseManifest decodes a manifest and rejects entries that could not have been
// written by a provisioning run.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("could not decode manifest: %w", err)
	}
	if m.Domain == "" {
		return nil, fmt.Errorf("manifest has no domain")
	}
	for _, f := range m.Files {
		if !path.IsAbs(f.Path) || path.Clean(f.Path) != f.Path {
			return nil, fmt.Errorf("manifest entry %q is not a clean absolute path", f.Path)
		}
	}
	return &m, nil
}
