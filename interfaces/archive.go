package interfaces

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
)

var (
	ErrArtifactNotFound       = errors.New("artifact not found in archive")
	ErrArtifactCorrupt        = errors.New("archived artifact does not match its id")
	ErrArchiveUnavailable     = errors.New("archive unavailable")
	ErrInvalidArchiveLocation = errors.New("invalid archive location")
)

// ArtifactID addresses an archived file by the SHA-256 of its content.
type ArtifactID [sha256.Size]byte

// ComputeArtifactID returns the id data is archived under.
func ComputeArtifactID(data []byte) ArtifactID {
	return sha256.Sum256(data)
}

// ParseArtifactID parses the hex form printed by String.
func ParseArtifactID(s string) (ArtifactID, error) {
	var id ArtifactID
	if hex.DecodedLen(len(s)) != len(id) {
		return id, fmt.Errorf("artifact id %q: want %d hex characters", s, hex.EncodedLen(len(id)))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("artifact id %q: %w", s, err)
	}
	return id, nil
}

func (id ArtifactID) String() string {
	return hex.EncodeToString(id[:])
}

func (id ArtifactID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ArtifactID) UnmarshalText(text []byte) error {
	parsed, err := ParseArtifactID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Short is the prefix used in log lines.
func (id ArtifactID) Short() string {
	return hex.EncodeToString(id[:6])
}

// Verify reports ErrArtifactCorrupt unless data hashes to id.
func (id ArtifactID) Verify(data []byte) error {
	if got := ComputeArtifactID(data); got != id {
		return fmt.Errorf("%w: want %s, got %s", ErrArtifactCorrupt, id.Short(), got.Short())
	}
	return nil
}

// ArtifactKind separates credentials from plain configuration in every backend.
type ArtifactKind int

const (
	KindConfig ArtifactKind = iota
	KindSecret
)

func (k ArtifactKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindSecret:
		return "secret"
	default:
		return "unknown"
	}
}

func (k ArtifactKind) MarshalText() ([]byte, error) {
	if k != KindConfig && k != KindSecret {
		return nil, fmt.Errorf("unknown artifact kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *ArtifactKind) UnmarshalText(text []byte) error {
	parsed, err := ParseArtifactKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseArtifactKind parses the String form.
func ParseArtifactKind(s string) (ArtifactKind, error) {
	switch s {
	case "config":
		return KindConfig, nil
	case "secret":
		return KindSecret, nil
	default:
		return 0, fmt.Errorf("unknown artifact kind %q", s)
	}
}

// ArchiveLocation is a parsed --archive URI.
//
//	file:///var/lib/domainctl/archive
//	s3://[key:secret@]bucket/prefix?region=eu-west-1&endpoint=http://minio:9000
//	ipfs://host[:5001]/mfs/root?timeout=30s
//	vault://host:8200/<mount>/<path>[?tls=false]
type ArchiveLocation struct {
	url.URL
}

// ParseArchiveLocation validates raw and its scheme.
func ParseArchiveLocation(raw string) (ArchiveLocation, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return ArchiveLocation{}, fmt.Errorf("%w: %v", ErrInvalidArchiveLocation, err)
	}
	switch u.Scheme {
	case "file", "s3", "ipfs", "vault":
	default:
		return ArchiveLocation{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidArchiveLocation, u.Scheme)
	}
	return ArchiveLocation{URL: *u}, nil
}

// ArchiveBackend keeps copies of generated files, addressed by content.
// Putting the same content twice is not an error and yields the same id.
type ArchiveBackend interface {
	Put(ctx context.Context, data []byte, kind ArtifactKind) (ArtifactID, error)
	// Get returns ErrArtifactNotFound when id is not stored under kind.
	Get(ctx context.Context, id ArtifactID, kind ArtifactKind) ([]byte, error)
	Available(ctx context.Context) bool
	Name() string
	// Location is the archive URI without credentials.
	Location() string
}
