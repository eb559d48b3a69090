package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

const (
	defaultIPFSPort    = "5001"
	defaultIPFSRoot    = "/weblogic-domains"
	defaultIPFSTimeout = 30 * time.Second
	defaultS3Region    = "us-east-1"
)

// Open opens every location and replicates across them. Locations that cannot be
// opened are logged and skipped; at least one must open. Opening touches nothing
// remote or on disk.
func Open(locations []interfaces.ArchiveLocation, log *slog.Logger) (*MultiBackend, error) {
	backends := make([]interfaces.ArchiveBackend, 0, len(locations))
	for _, loc := range locations {
		b, err := OpenLocation(loc, log)
		if err != nil {
			log.Warn("Skipping archive location", "location", loc.Redacted(), "err", err)
			continue
		}
		backends = append(backends, b)
	}
	if len(backends) == 0 {
		return nil, errors.New("no usable archive location")
	}
	return NewMultiBackend(backends, log), nil
}

// OpenLocation opens the backend selected by the location's scheme.
func OpenLocation(loc interfaces.ArchiveLocation, log *slog.Logger) (interfaces.ArchiveBackend, error) {
	switch loc.Scheme {
	case "file":
		return openFile(loc, log)
	case "s3":
		return openS3(loc, log)
	case "ipfs":
		return openIPFS(loc, log)
	case "vault":
		return openVault(loc, log)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", interfaces.ErrInvalidArchiveLocation, loc.Scheme)
	}
}

func invalid(loc interfaces.ArchiveLocation, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", interfaces.ErrInvalidArchiveLocation, loc.Redacted(), fmt.Sprintf(format, args...))
}

// file:///abs/dir or file://./rel/dir
func openFile(loc interfaces.ArchiveLocation, log *slog.Logger) (interfaces.ArchiveBackend, error) {
	dir := loc.Path
	if loc.Host != "" {
		dir = loc.Host + "/" + strings.TrimPrefix(dir, "/")
	}
	if dir == "" {
		return nil, invalid(loc, "empty directory")
	}
	return NewFileBackend(dir, log), nil
}

// s3://[key:secret@]bucket/prefix?region=&endpoint=
func openS3(loc interfaces.ArchiveLocation, log *slog.Logger) (interfaces.ArchiveBackend, error) {
	if loc.Host == "" {
		return nil, invalid(loc, "missing bucket")
	}

	q := loc.Query()
	cfg := S3Config{
		Bucket:   loc.Host,
		Prefix:   loc.Path,
		Region:   q.Get("region"),
		Endpoint: q.Get("endpoint"),
	}
	if cfg.Region == "" {
		cfg.Region = defaultS3Region
	}
	if loc.User != nil {
		cfg.AccessKey = loc.User.Username()
		cfg.SecretKey, _ = loc.User.Password()
	}
	return NewS3Backend(cfg, log)
}

// ipfs://host[:port]/mfs/root?timeout=30s
func openIPFS(loc interfaces.ArchiveLocation, log *slog.Logger) (interfaces.ArchiveBackend, error) {
	if loc.Hostname() == "" {
		return nil, invalid(loc, "missing host")
	}
	port := loc.Port()
	if port == "" {
		port = defaultIPFSPort
	}

	timeout := defaultIPFSTimeout
	if t := loc.Query().Get("timeout"); t != "" {
		var err error
		if timeout, err = time.ParseDuration(t); err != nil {
			return nil, invalid(loc, "timeout %q: %v", t, err)
		}
	}

	root := loc.Path
	if strings.Trim(root, "/") == "" {
		root = defaultIPFSRoot
	}
	return NewIPFSBackend(net.JoinHostPort(loc.Hostname(), port), root, timeout, log), nil
}

// vault://host:port/<mount>/<path>[?tls=false]. The token comes from VAULT_TOKEN.
func openVault(loc interfaces.ArchiveLocation, log *slog.Logger) (interfaces.ArchiveBackend, error) {
	mount, dataPath, ok := strings.Cut(strings.Trim(loc.Path, "/"), "/")
	if !ok || mount == "" || dataPath == "" {
		return nil, invalid(loc, "want /<mount>/<path>")
	}

	scheme := "https"
	if loc.Query().Get("tls") == "false" {
		scheme = "http"
	}
	return NewVaultBackend(scheme+"://"+loc.Host, mount, dataPath, "", log)
}
