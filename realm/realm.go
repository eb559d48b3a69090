package realm

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

const (
	// AuthenticationProvider is the provider base type used when creating authenticators.
	AuthenticationProvider = "AuthenticationProvider"
	// AuthenticationProviders is the collection of a realm holding the authenticator chain.
	AuthenticationProviders = "AuthenticationProviders"

	// DefaultAuthenticatorName is the embedded authenticator every new domain starts with.
	DefaultAuthenticatorName = "DefaultAuthenticator"

	attrControlFlag = "ControlFlag"
	attrClassName   = "ProviderClassName"
)

// ProviderPath is the session address of a named authentication provider.
func ProviderPath(realmPath, name string) string {
	return path.Join(realmPath, AuthenticationProviders, name)
}

// Append adds entry after the existing providers of the realm at realmPath, then sets its
// control flag and its attributes in order. It returns the address of the new provider.
func Append(ctx context.Context, s interfaces.DomainSession, realmPath string, entry interfaces.AuthenticationProviderEntry) (string, error) {
	if !entry.ControlFlag.Valid() {
		return "", fmt.Errorf("%w: %q", interfaces.ErrInvalidControlFlag, entry.ControlFlag)
	}

	existing, err := Providers(ctx, s, realmPath)
	if err != nil {
		return "", err
	}
	if slices.Contains(existing, entry.Name) {
		return "", fmt.Errorf("%w: %s in %s", interfaces.ErrProviderExists, entry.Name, realmPath)
	}

	address, err := s.CreateProvider(ctx, realmPath, entry.Name, entry.Type, AuthenticationProvider)
	if err != nil {
		if errors.Is(err, interfaces.ErrChildExists) {
			return "", fmt.Errorf("%w: %s in %s", interfaces.ErrProviderExists, entry.Name, realmPath)
		}
		return "", fmt.Errorf("could not create provider %s: %w", entry.Name, err)
	}

	if err := s.Set(ctx, address, attrControlFlag, string(entry.ControlFlag)); err != nil {
		return "", fmt.Errorf("could not set control flag of %s: %w", entry.Name, err)
	}

	for _, attr := range entry.Attributes {
		if err := s.Set(ctx, address, attr.Name, attr.Value); err != nil {
			return "", fmt.Errorf("could not set %s of %s: %w", attr.Name, entry.Name, err)
		}
	}

	return address, nil
}

// Providers lists the authentication providers of the realm in evaluation order.
func Providers(ctx context.Context, s interfaces.DomainSession, realmPath string) ([]string, error) {
	names, err := s.List(ctx, realmPath, AuthenticationProviders)
	if errors.Is(err, interfaces.ErrNoSuchPath) {
		return nil, fmt.Errorf("%w: %s", interfaces.ErrRealmNotFound, realmPath)
	} else if err != nil {
		return nil, fmt.Errorf("could not list providers of %s: %w", realmPath, err)
	}
	return names, nil
}

// Describe returns the chain of the realm with each provider's type and control flag.
// Attributes other than the control flag are not read back.
func Describe(ctx context.Context, s interfaces.DomainSession, realmPath string) ([]interfaces.AuthenticationProviderEntry, error) {
	names, err := Providers(ctx, s, realmPath)
	if err != nil {
		return nil, err
	}

	entries := make([]interfaces.AuthenticationProviderEntry, 0, len(names))
	for _, name := range names {
		address := ProviderPath(realmPath, name)

		flag, err := s.Get(ctx, address, attrControlFlag)
		if err != nil {
			return nil, fmt.Errorf("could not read control flag of %s: %w", name, err)
		}
		entry := interfaces.AuthenticationProviderEntry{Name: name}
		if f, ok := flag.(string); ok {
			entry.ControlFlag = interfaces.ControlFlag(f)
		}
		if className, err := s.Get(ctx, address, attrClassName); err == nil {
			entry.Type, _ = className.(string)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SetControlFlag changes the control flag of an existing provider.
func SetControlFlag(ctx context.Context, s interfaces.DomainSession, realmPath, name string, flag interfaces.ControlFlag) error {
	if !flag.Valid() {
		return fmt.Errorf("%w: %q", interfaces.ErrInvalidControlFlag, flag)
	}
	if err := s.Set(ctx, ProviderPath(realmPath, name), attrControlFlag, string(flag)); err != nil {
		if errors.Is(err, interfaces.ErrNoSuchPath) {
			return fmt.Errorf("provider %s not found in %s: %w", name, realmPath, err)
		}
		return fmt.Errorf("could not set control flag of %s: %w", name, err)
	}
	return nil
}

// Reorder sets the evaluation order of the realm's providers. names must be a permutation
// of the current chain. Sessions that cannot reorder return ErrReorderUnsupported.
func Reorder(ctx context.Context, s interfaces.DomainSession, realmPath string, names []string) error {
	current, err := Providers(ctx, s, realmPath)
	if err != nil {
		return err
	}

	if len(current) != len(names) {
		return fmt.Errorf("reorder of %s: expected %d providers, got %d", realmPath, len(current), len(names))
	}
	sortedCurrent, sortedNames := slices.Clone(current), slices.Clone(names)
	slices.Sort(sortedCurrent)
	slices.Sort(sortedNames)
	if !slices.Equal(sortedCurrent, sortedNames) {
		return fmt.Errorf("reorder of %s: %v is not a permutation of %v", realmPath, names, current)
	}

	if err := s.SetProviderOrder(ctx, realmPath, AuthenticationProvider, names); err != nil {
		return fmt.Errorf("could not reorder providers of %s: %w", realmPath, err)
	}
	return nil
}
