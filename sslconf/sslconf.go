package sslconf

import (
	"context"
	"fmt"
	"path"
	"slices"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// SSL is the kind of a server's SSL configuration child. It is named after the server.
const SSL = "SSL"

// ServerPath is the session address of a server.
func ServerPath(serverName string) string {
	return path.Join("/Server", serverName)
}

// DisableHostnameVerification creates the SSL configuration of serverName if absent and turns off
// hostname verification, the custom verifier, two-way SSL and client certificate enforcement.
// Applying it again re-sets the same values.
func DisableHostnameVerification(ctx context.Context, s interfaces.DomainSession, serverName string) error {
	server := ServerPath(serverName)

	existing, err := s.List(ctx, server, SSL)
	if err != nil {
		return fmt.Errorf("could not inspect server %s: %w", serverName, err)
	}

	address := path.Join(server, SSL, serverName)
	if !slices.Contains(existing, serverName) {
		if address, err = s.Create(ctx, server, SSL, serverName); err != nil {
			return fmt.Errorf("could not create SSL configuration of %s: %w", serverName, err)
		}
	}

	settings := []interfaces.Attribute{
		{Name: "HostnameVerificationIgnored", Value: true},
		{Name: "HostnameVerifier", Value: nil},
		{Name: "TwoWaySSLEnabled", Value: false},
		{Name: "ClientCertificateEnforced", Value: false},
	}
	for _, attr := range settings {
		if err := s.Set(ctx, address, attr.Name, attr.Value); err != nil {
			return fmt.Errorf("could not set %s on %s: %w", attr.Name, serverName, err)
		}
	}
	return nil
}
