package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// MultiBackend replicates every artifact to all available backends and reads it back
// from the first backend holding an intact copy.
type MultiBackend struct {
	backends []interfaces.ArchiveBackend
	log      *slog.Logger
}

func NewMultiBackend(backends []interfaces.ArchiveBackend, log *slog.Logger) *MultiBackend {
	return &MultiBackend{backends: backends, log: log}
}

// Put succeeds when at least one backend accepted the artifact.
func (m *MultiBackend) Put(ctx context.Context, data []byte, kind interfaces.ArtifactKind) (interfaces.ArtifactID, error) {
	id := interfaces.ComputeArtifactID(data)
	var errs []error
	stored := 0

	for _, b := range m.backends {
		if !b.Available(ctx) {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), interfaces.ErrArchiveUnavailable))
			continue
		}
		got, err := b.Put(ctx, data, kind)
		if err != nil {
			m.log.Warn("Failed to archive copy", "backend", b.Name(), "id", id.Short(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		if got != id {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), interfaces.ErrArtifactCorrupt))
			continue
		}
		stored++
	}

	if stored == 0 {
		return id, fmt.Errorf("no archive accepted %s %s: %w", kind, id.Short(), errors.Join(errs...))
	}
	m.log.Debug("Archived artifact", "id", id.Short(), "kind", kind.String(), "copies", stored)
	return id, nil
}

// Get skips backends that are unavailable, miss the artifact or return content that
// does not hash to id. ErrArtifactNotFound is reported only when no backend failed otherwise.
func (m *MultiBackend) Get(ctx context.Context, id interfaces.ArtifactID, kind interfaces.ArtifactKind) ([]byte, error) {
	var errs []error
	for _, b := range m.backends {
		if !b.Available(ctx) {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), interfaces.ErrArchiveUnavailable))
			continue
		}
		data, err := b.Get(ctx, id, kind)
		if err == nil {
			err = id.Verify(data)
		}
		if err != nil {
			m.log.Debug("Archive copy not usable", "backend", b.Name(), "id", id.Short(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		return data, nil
	}

	for _, err := range errs {
		if !errors.Is(err, interfaces.ErrArtifactNotFound) {
			return nil, fmt.Errorf("could not read %s %s: %w", kind, id.Short(), errors.Join(errs...))
		}
	}
	return nil, fmt.Errorf("%w: %s %s", interfaces.ErrArtifactNotFound, kind, id.Short())
}

func (m *MultiBackend) Available(ctx context.Context) bool {
	for _, b := range m.backends {
		if b.Available(ctx) {
			return true
		}
	}
	return false
}

func (m *MultiBackend) Name() string {
	return "multi"
}

func (m *MultiBackend) Location() string {
	locations := make([]string, len(m.backends))
	for i, b := range m.backends {
		locations[i] = b.Location()
	}
	return "multi:[" + strings.Join(locations, ",") + "]"
}
