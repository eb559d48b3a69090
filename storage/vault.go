package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// VaultBackend keeps artifacts in a KV v2 engine as <mount>/data/<path>/<kind>/<id>,
// with the file content under the "content" key.
type VaultBackend struct {
	client   *api.Client
	mount    string
	path     string
	location string
	log      *slog.Logger
}

// NewVaultBackend connects to the Vault server at address. An empty token keeps
// whatever the client read from VAULT_TOKEN.
func NewVaultBackend(address, mount, dataPath, token string, log *slog.Logger) (*VaultBackend, error) {
	cfg := api.DefaultConfig()
	if cfg.Error != nil {
		return nil, fmt.Errorf("could not read Vault environment: %w", cfg.Error)
	}
	cfg.Address = address
	cfg.Timeout = 30 * time.Second

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create Vault client: %w", err)
	}
	if token != "" {
		client.SetToken(token)
	}

	mount = strings.Trim(mount, "/")
	dataPath = strings.Trim(dataPath, "/")
	host := strings.TrimPrefix(strings.TrimPrefix(address, "https://"), "http://")

	return &VaultBackend{
		client:   client,
		mount:    mount,
		path:     dataPath,
		location: fmt.Sprintf("vault://%s/%s/%s", host, mount, dataPath),
		log:      log,
	}, nil
}

func (b *VaultBackend) Put(ctx context.Context, data []byte, kind interfaces.ArtifactKind) (interfaces.ArtifactID, error) {
	id := interfaces.ComputeArtifactID(data)
	key := b.key(id, kind)

	_, err := b.client.Logical().WriteWithContext(ctx, key, map[string]interface{}{
		"data": map[string]interface{}{"content": string(data)},
	})
	if err != nil {
		return id, fmt.Errorf("%w: could not write %s: %v", interfaces.ErrArchiveUnavailable, key, err)
	}

	b.log.Debug("Archived to Vault", slog.String("path", key))
	return id, nil
}

func (b *VaultBackend) Get(ctx context.Context, id interfaces.ArtifactID, kind interfaces.ArtifactKind) ([]byte, error) {
	key := b.key(id, kind)
	secret, err := b.client.Logical().ReadWithContext(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read %s: %v", interfaces.ErrArchiveUnavailable, key, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrArtifactNotFound, key)
	}

	data, _ := secret.Data["data"].(map[string]interface{})
	content, ok := data["content"].(string)
	if !ok {
		return nil, fmt.Errorf("%s has no string content", key)
	}
	return []byte(content), nil
}

// Available requires an initialized and unsealed server.
func (b *VaultBackend) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health, err := b.client.Sys().HealthWithContext(ctx)
	if err != nil {
		b.log.Debug("Vault health check failed", "err", err)
		return false
	}
	if !health.Initialized || health.Sealed {
		b.log.Debug("Vault archive unavailable", slog.Bool("initialized", health.Initialized), slog.Bool("sealed", health.Sealed))
		return false
	}
	return true
}

func (b *VaultBackend) Name() string {
	return fmt.Sprintf("vault-%s-%s", b.mount, b.path)
}

func (b *VaultBackend) Location() string {
	return b.location
}

func (b *VaultBackend) key(id interfaces.ArtifactID, kind interfaces.ArtifactKind) string {
	return fmt.Sprintf("%s/data/%s/%s/%s", b.mount, b.path, kind, id)
}
