package interfaces

import (
	"errors"
	"fmt"
)

// ControlFlag decides how a provider's result affects login, in the style of a PAM stack.
type ControlFlag string

const (
	ControlFlagRequired   ControlFlag = "REQUIRED"
	ControlFlagRequisite  ControlFlag = "REQUISITE"
	ControlFlagSufficient ControlFlag = "SUFFICIENT"
	ControlFlagOptional   ControlFlag = "OPTIONAL"
)

// Valid reports whether f is one of the four known flags.
func (f ControlFlag) Valid() bool {
	switch f {
	case ControlFlagRequired, ControlFlagRequisite, ControlFlagSufficient, ControlFlagOptional:
		return true
	}
	return false
}

// Attribute is a single provider attribute. Attributes are applied in slice order.
type Attribute struct {
	Name  string
	Value any
}

// AuthenticationProviderEntry is one element of a realm's provider chain.
type AuthenticationProviderEntry struct {
	Name        string
	Type        string
	ControlFlag ControlFlag
	Attributes  []Attribute
}

var (
	// ErrProviderExists is returned when a provider with the same name is already in the chain.
	ErrProviderExists = errors.New("authentication provider already exists")

	// ErrRealmNotFound is returned when the realm address does not exist in the session.
	ErrRealmNotFound = errors.New("security realm not found")

	// ErrInvalidControlFlag is returned for a control flag outside REQUIRED/REQUISITE/SUFFICIENT/OPTIONAL.
	ErrInvalidControlFlag = errors.New("invalid control flag")
)

// RealmPath is the session address of a named realm of a domain.
func RealmPath(domainName, realm string) string {
	return fmt.Sprintf("/SecurityConfiguration/%s/Realms/%s", domainName, realm)
}

// DefaultRealm is the realm every new domain is created with.
const DefaultRealm = "myrealm"
