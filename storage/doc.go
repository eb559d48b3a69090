// Package storage archives copies of generated domain files.
//
// Every artifact is addressed by the SHA-256 of its content (interfaces.ArtifactID).
// boot.properties is archived as interfaces.KindSecret and everything else as
// interfaces.KindConfig; the two kinds live in separate namespaces of each backend.
//
// Backends are opened from --archive URIs:
//
//   - file:///var/lib/domainctl/archive
//   - s3://bucket-name/prefix?region=eu-west-1&endpoint=http://minio:9000
//   - ipfs://ipfs.example.com:5001/weblogic-domains
//   - vault://vault.example.com:8200/secret/weblogic?tls=false
//
// S3 credentials may be embedded as access-key:secret-key userinfo. Vault authenticates
// with the token found in VAULT_TOKEN and writes to the KV v2 engine mounted at the first
// path segment. Opening a backend has no side effects; the file backend creates its
// directory on the first Put.
//
//	archive, err := storage.Open(locations, logger)
//	if err != nil {
//	    return err
//	}
//	id, err := archive.Put(ctx, []byte(content), interfaces.KindConfig)
//
// Open replicates across all locations. Put succeeds when at least one backend accepted
// the artifact; Get returns the first copy that still hashes to its id.
//
// Each provisioning run also archives a Manifest listing its files, which is what a
// restore starts from.
package storage
