package interfaces

import (
	"context"
	"errors"
)

// Secret marks an attribute value that must not appear in logs or generated scripts.
type Secret string

// String hides the secret value.
func (Secret) String() string { return "********" }

var (
	// ErrNoSuchPath is returned when an address does not name a node in the configuration tree.
	ErrNoSuchPath = errors.New("no such configuration path")

	// ErrChildExists is returned when creating a child whose name is already taken.
	ErrChildExists = errors.New("configuration child already exists")

	// ErrSessionState is returned when a session call is not valid in the session's current state,
	// e.g. setting an option with no template loaded, or using a closed session.
	ErrSessionState = errors.New("invalid session state")

	// ErrReorderUnsupported is returned by sessions that cannot change provider order.
	// Offline sessions never support it.
	ErrReorderUnsupported = errors.New("authentication provider reordering is not supported in offline mode")
)

// DomainSession is the administrative session used to build and configure a domain.
//
// Addresses are absolute, path-like and alternate child kind and child name,
// e.g. /Server/AdminServer/SSL/AdminServer. A session is exclusively owned by one
// provisioning run and is not safe for concurrent use.
type DomainSession interface {
	// ReadTemplate loads the base domain template.
	ReadTemplate(ctx context.Context, templatePath string) error
	// SetOption sets a template-time domain option.
	SetOption(ctx context.Context, name, value string) error
	// WriteDomain persists the loaded template as a domain under domainHome.
	WriteDomain(ctx context.Context, domainHome string) error
	// CloseTemplate releases the template. It cannot be used afterwards.
	CloseTemplate(ctx context.Context) error

	// ReadDomain opens a persisted domain for post-save configuration.
	ReadDomain(ctx context.Context, domainHome string) error
	// UpdateDomain commits all pending changes of the open domain.
	UpdateDomain(ctx context.Context) error
	// CloseDomain releases the open domain.
	CloseDomain(ctx context.Context) error

	// Get reads one attribute of the node at address.
	Get(ctx context.Context, address, attribute string) (any, error)
	// Set writes one attribute of the node at address. Values are string, bool, Secret or nil.
	Set(ctx context.Context, address, attribute string, value any) error
	// List returns the names of the children of kind under the node at parent, in order.
	List(ctx context.Context, parent, kind string) ([]string, error)
	// Create adds a child of kind named name under parent and returns its address.
	Create(ctx context.Context, parent, kind, name string) (string, error)
	// CreateProvider instantiates a security provider of providerType under the realm at realmPath.
	// baseType selects the provider collection (AuthenticationProvider -> AuthenticationProviders).
	CreateProvider(ctx context.Context, realmPath, name, providerType, baseType string) (string, error)
	// SetProviderOrder replaces the provider evaluation order of the realm.
	SetProviderOrder(ctx context.Context, realmPath, baseType string, names []string) error
}

// ErrInvalidTransition is returned when a provisioning step is attempted out of order.
var ErrInvalidTransition = errors.New("invalid provisioning state transition")
