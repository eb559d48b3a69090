package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// FileBackend keeps artifacts in a directory as <kind>/<id>. Nothing is created on disk
// until the first Put.
type FileBackend struct {
	fs       billy.Filesystem
	location string
	log      *slog.Logger
}

// NewFileBackend archives into dir on the host filesystem.
func NewFileBackend(dir string, log *slog.Logger) *FileBackend {
	return NewFileBackendFS(osfs.New(dir), "file://"+dir, log)
}

func NewFileBackendFS(fs billy.Filesystem, location string, log *slog.Logger) *FileBackend {
	return &FileBackend{fs: fs, location: location, log: log}
}

func (b *FileBackend) Put(ctx context.Context, data []byte, kind interfaces.ArtifactKind) (interfaces.ArtifactID, error) {
	id := interfaces.ComputeArtifactID(data)

	// boot.properties copies stay readable by the owner only.
	perm := os.FileMode(0o640)
	if kind == interfaces.KindSecret {
		perm = 0o600
	}

	name := b.key(id, kind)
	if err := util.WriteFile(b.fs, name, data, perm); err != nil {
		return id, fmt.Errorf("could not write %s: %w", name, err)
	}

	b.log.Debug("Archived to file", slog.String("path", name), slog.String("id", id.Short()))
	return id, nil
}

func (b *FileBackend) Get(ctx context.Context, id interfaces.ArtifactID, kind interfaces.ArtifactKind) ([]byte, error) {
	name := b.key(id, kind)
	data, err := util.ReadFile(b.fs, name)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrArtifactNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", name, err)
	}
	return data, nil
}

// Available reports false only when the archive directory exists and cannot be listed.
func (b *FileBackend) Available(ctx context.Context) bool {
	if _, err := b.fs.ReadDir("/"); err != nil && !os.IsNotExist(err) {
		b.log.Debug("File archive unavailable", "err", err)
		return false
	}
	return true
}

func (b *FileBackend) Name() string {
	return "file-" + path.Base(b.fs.Root())
}

func (b *FileBackend) Location() string {
	return b.location
}

func (b *FileBackend) key(id interfaces.ArtifactID, kind interfaces.ArtifactKind) string {
	return path.Join(kind.String(), id.String())
}
