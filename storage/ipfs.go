package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// IPFSBackend keeps artifacts in the mutable file system (MFS) of an IPFS node as
// <root>/<kind>/<id>.
type IPFSBackend struct {
	shell    *shell.Shell
	addr     string
	root     string
	location string
	log      *slog.Logger
}

// NewIPFSBackend talks to the node API at addr (host:port).
func NewIPFSBackend(addr, root string, timeout time.Duration, log *slog.Logger) *IPFSBackend {
	sh := shell.NewShell(addr)
	sh.SetTimeout(timeout)

	root = "/" + strings.Trim(root, "/")
	return &IPFSBackend{
		shell:    sh,
		addr:     addr,
		root:     root,
		location: fmt.Sprintf("ipfs://%s%s?timeout=%s", addr, root, timeout),
		log:      log,
	}
}

func (b *IPFSBackend) Put(ctx context.Context, data []byte, kind interfaces.ArtifactKind) (interfaces.ArtifactID, error) {
	id := interfaces.ComputeArtifactID(data)
	if !b.shell.IsUp() {
		return id, fmt.Errorf("%w: ipfs node %s", interfaces.ErrArchiveUnavailable, b.addr)
	}

	key := b.key(id, kind)
	err := b.shell.FilesWrite(ctx, key, bytes.NewReader(data),
		shell.FilesWrite.Create(true),
		shell.FilesWrite.Parents(true),
		shell.FilesWrite.Truncate(true))
	if err != nil {
		return id, fmt.Errorf("could not write %s to ipfs: %w", key, err)
	}

	b.log.Debug("Archived to IPFS", slog.String("path", key))
	return id, nil
}

func (b *IPFSBackend) Get(ctx context.Context, id interfaces.ArtifactID, kind interfaces.ArtifactKind) ([]byte, error) {
	key := b.key(id, kind)
	r, err := b.shell.FilesRead(ctx, key)
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			return nil, fmt.Errorf("%w: ipfs %s", interfaces.ErrArtifactNotFound, key)
		}
		return nil, fmt.Errorf("could not read %s from ipfs: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read %s from ipfs: %w", key, err)
	}
	return data, nil
}

func (b *IPFSBackend) Available(ctx context.Context) bool {
	return b.shell.IsUp()
}

func (b *IPFSBackend) Name() string {
	return "ipfs-" + strings.ReplaceAll(b.addr, ":", "-")
}

func (b *IPFSBackend) Location() string {
	return b.location
}

func (b *IPFSBackend) key(id interfaces.ArtifactID, kind interfaces.ArtifactKind) string {
	return path.Join(b.root, kind.String(), id.String())
}
