package realm

import (
	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// ActiveDirectoryAuthenticator is the provider class of the platform's Active Directory authenticator.
const ActiveDirectoryAuthenticator = "weblogic.security.providers.authentication.ActiveDirectoryAuthenticator"

// LDAPConfig holds the bind settings of an LDAP-backed authenticator.
type LDAPConfig struct {
	// Principal is the bind DN.
	Principal string
	// Credential is the bind password.
	Credential string
	// Host is one host[:port], or several separated by spaces.
	Host string

	UserBaseDN  string
	GroupBaseDN string
}

// LDAPConfigFrom extracts the LDAP settings of a parameter set.
func LDAPConfigFrom(ps interfaces.ParameterSet) LDAPConfig {
	return LDAPConfig{
		Principal:   ps.LDAPPrincipal,
		Credential:  ps.LDAPPassword,
		Host:        ps.LDAPHost,
		UserBaseDN:  ps.LDAPUserBaseDN,
		GroupBaseDN: ps.LDAPGroupBaseDN,
	}
}

// ActiveDirectoryProvider builds a SUFFICIENT Active Directory authenticator entry named name.
// Base DNs are only included when configured.
func ActiveDirectoryProvider(name string, cfg LDAPConfig) interfaces.AuthenticationProviderEntry {
	attrs := []interfaces.Attribute{
		{Name: "PropagateCauseForLoginException", Value: true},
		{Name: "Principal", Value: cfg.Principal},
		{Name: "CredentialEncrypted", Value: interfaces.Secret(cfg.Credential)},
		{Name: "Host", Value: cfg.Host},
	}
	if cfg.UserBaseDN != "" {
		attrs = append(attrs, interfaces.Attribute{Name: "UserBaseDN", Value: cfg.UserBaseDN})
	}
	attrs = append(attrs,
		interfaces.Attribute{Name: "AllUsersFilter", Value: "(&(cn=*)(objectclass=user))"},
		interfaces.Attribute{Name: "UserFromNameFilter", Value: "(&(cn=%u)(objectclass=user))"},
		interfaces.Attribute{Name: "UserObjectClass", Value: "user"},
		interfaces.Attribute{Name: "UserNameAttribute", Value: "cn"},
	)
	if cfg.GroupBaseDN != "" {
		attrs = append(attrs, interfaces.Attribute{Name: "GroupBaseDN", Value: cfg.GroupBaseDN})
	}
	attrs = append(attrs,
		interfaces.Attribute{Name: "AllGroupsFilter", Value: "(&(cn=*)(objectclass=group))"},
		interfaces.Attribute{Name: "GroupFromNameFilter", Value: "(&(cn=%g)(objectclass=group))"},
		interfaces.Attribute{Name: "GuidAttribute", Value: "objectguid"},
		interfaces.Attribute{Name: "StaticGroupObjectClass", Value: "group"},
		interfaces.Attribute{Name: "StaticGroupDNsfromMemberDNFilter", Value: "(&(member=%M)(objectclass=group))"},
		interfaces.Attribute{Name: "StaticMemberDNAttribute", Value: "member"},
	)

	return interfaces.AuthenticationProviderEntry{
		Name:        name,
		Type:        ActiveDirectoryAuthenticator,
		ControlFlag: interfaces.ControlFlagSufficient,
		Attributes:  attrs,
	}
}
