package provisioner

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/ruteri/weblogic-domain-provisioner/filegen"
	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
	"github.com/ruteri/weblogic-domain-provisioner/storage"
)

// Restore rewrites the files of an archived run. Every listed file is fetched and
// checked against its id before the first one is written, so a missing or damaged copy
// leaves the disk untouched.
func Restore(ctx context.Context, archive interfaces.ArchiveBackend, files *filegen.Generator, manifestID interfaces.ArtifactID, log *slog.Logger) (*storage.Manifest, error) {
	data, err := fetchVerified(ctx, archive, manifestID, interfaces.KindConfig)
	if err != nil {
		return nil, fmt.Errorf("could not fetch manifest %s: %w", manifestID.Short(), err)
	}
	manifest, err := storage.ParseManifest(data)
	if err != nil {
		return nil, err
	}

	restored := make([]interfaces.GeneratedFile, 0, len(manifest.Files))
	for _, entry := range manifest.Files {
		content, err := fetchVerified(ctx, archive, entry.ID, entry.Kind)
		if err != nil {
			return manifest, fmt.Errorf("could not fetch %s: %w", entry.Path, err)
		}
		restored = append(restored, interfaces.GeneratedFile{
			Dir:     path.Dir(entry.Path),
			Name:    path.Base(entry.Path),
			Content: string(content),
			Secret:  entry.Kind == interfaces.KindSecret,
		})
	}

	log.Info("RESTORE FILES", "domain", manifest.Domain, "operation", manifest.Operation, "files", len(restored))
	for _, f := range restored {
		if err := files.WriteFile(f); err != nil {
			return manifest, err
		}
	}
	return manifest, nil
}

func fetchVerified(ctx context.Context, archive interfaces.ArchiveBackend, id interfaces.ArtifactID, kind interfaces.ArtifactKind) ([]byte, error) {
	data, err := archive.Get(ctx, id, kind)
	if err != nil {
		return nil, err
	}
	if err := id.Verify(data); err != nil {
		return nil, err
	}
	return data, nil
}
