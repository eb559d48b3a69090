package params

import (
	"fmt"
	"strings"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// LookupFunc returns the raw value of a named input and whether it was present.
type LookupFunc func(name string) (string, bool)

// Aliases are legacy input names still accepted for a canonical name.
// They are consulted, in order, only when the canonical name is absent.
var Aliases = map[interfaces.ParameterName][]string{
	interfaces.ParamWLHome:  {"WLS_HOME"},
	interfaces.ParamCfgHome: {"CFG_BASE"},
}

// Defaults for optional inputs. TEMPLATE_PATH defaults to a path under WL_HOME and is derived separately.
// ADMIN_SERVER_NAME is required by create; relayout falls back to DefaultAdminServerName.
const (
	DefaultLDAPProviderName = "CorpLDAP"
	DefaultServerStartMode  = "prod"
	DefaultAdminServerName  = "AdminServer"
)

// pathSegments are inputs joined verbatim into filesystem paths or configuration tree addresses.
var pathSegments = []interfaces.ParameterName{
	interfaces.ParamDomainName,
	interfaces.ParamAdminServerName,
	interfaces.ParamLDAPProviderName,
}

// createRequired is the order in which inputs are validated for the create operation.
// The first one missing is reported.
var createRequired = []interfaces.ParameterName{
	interfaces.ParamDomainName,
	interfaces.ParamJavaHome,
	interfaces.ParamMWHome,
	interfaces.ParamWLHome,
	interfaces.ParamFMWHome,
	interfaces.ParamCfgHome,
	interfaces.ParamAdminServerName,
	interfaces.ParamAdminUsername,
	interfaces.ParamAdminPassword,
	interfaces.ParamNodeManagerUsername,
	interfaces.ParamNodeManagerPassword,
	interfaces.ParamNodeManagerMode,
	interfaces.ParamLDAPPrincipal,
	interfaces.ParamLDAPPassword,
	interfaces.ParamLDAPHost,
}

var relayoutRequired = []interfaces.ParameterName{
	interfaces.ParamDomainName,
	interfaces.ParamJavaHome,
	interfaces.ParamMWHome,
	interfaces.ParamWLHome,
	interfaces.ParamFMWHome,
	interfaces.ParamCfgHome,
	interfaces.ParamNodeManagerMode,
}

// Required returns the inputs op cannot run without, in validation order.
func Required(op interfaces.Operation) ([]interfaces.ParameterName, error) {
	switch op {
	case interfaces.OperationCreate:
		return createRequired, nil
	case interfaces.OperationRelayout:
		return relayoutRequired, nil
	default:
		return nil, fmt.Errorf("%w: %q", interfaces.ErrUnknownOperation, op)
	}
}

// Resolve builds the ParameterSet for op from lookup.
//
// Every required input must resolve to a non-empty string; otherwise the error is a
// *interfaces.MissingParameterError naming the first absent input. Names used as path
// segments must be a single segment; otherwise the error is a *interfaces.InvalidParameterError.
// Resolve has no side effects.
func Resolve(op interfaces.Operation, lookup LookupFunc) (interfaces.ParameterSet, error) {
	required, err := Required(op)
	if err != nil {
		return interfaces.ParameterSet{}, err
	}

	values := make(map[interfaces.ParameterName]string)
	get := func(name interfaces.ParameterName) string {
		if v, ok := values[name]; ok {
			return v
		}
		v := lookupWithAliases(lookup, name)
		values[name] = v
		return v
	}

	for _, name := range required {
		if get(name) == "" {
			return interfaces.ParameterSet{}, interfaces.MissingParameter(name)
		}
	}

	ps := interfaces.ParameterSet{
		DomainName:          get(interfaces.ParamDomainName),
		JavaHome:            get(interfaces.ParamJavaHome),
		MWHome:              get(interfaces.ParamMWHome),
		WLHome:              get(interfaces.ParamWLHome),
		FMWHome:             get(interfaces.ParamFMWHome),
		CfgHome:             strings.TrimSuffix(get(interfaces.ParamCfgHome), "/"),
		AdminServerName:     get(interfaces.ParamAdminServerName),
		AdminUsername:       get(interfaces.ParamAdminUsername),
		AdminPassword:       get(interfaces.ParamAdminPassword),
		NodeManagerUsername: get(interfaces.ParamNodeManagerUsername),
		NodeManagerPassword: get(interfaces.ParamNodeManagerPassword),
		NodeManagerMode:     get(interfaces.ParamNodeManagerMode),
		LDAPPrincipal:       get(interfaces.ParamLDAPPrincipal),
		LDAPPassword:        get(interfaces.ParamLDAPPassword),
		LDAPHost:            get(interfaces.ParamLDAPHost),
		LDAPProviderName:    get(interfaces.ParamLDAPProviderName),
		LDAPUserBaseDN:      withDefault(get(interfaces.ParamLDAPUserBaseDN), get(interfaces.ParamLDAPBaseDN)),
		LDAPGroupBaseDN:     withDefault(get(interfaces.ParamLDAPGroupBaseDN), get(interfaces.ParamLDAPBaseDN)),
		ServerStartMode:     withDefault(get(interfaces.ParamServerStartMode), DefaultServerStartMode),
		TemplatePath:        get(interfaces.ParamTemplatePath),
	}
	for _, name := range pathSegments {
		if err := checkSegment(name, get(name)); err != nil {
			return interfaces.ParameterSet{}, err
		}
	}
	ps.AdminServerName = withDefault(ps.AdminServerName, DefaultAdminServerName)
	ps.LDAPProviderName = withDefault(ps.LDAPProviderName, DefaultLDAPProviderName)

	if ps.TemplatePath == "" {
		ps.TemplatePath = strings.TrimSuffix(ps.WLHome, "/") + "/common/templates/wls/wls.jar"
	}

	return ps, nil
}

func lookupWithAliases(lookup LookupFunc, name interfaces.ParameterName) string {
	if v, ok := lookup(string(name)); ok && v != "" {
		return v
	}
	for _, alias := range Aliases[name] {
		if v, ok := lookup(alias); ok && v != "" {
			return v
		}
	}
	return ""
}

// checkSegment accepts an empty value, which is left to defaults, or a single path segment.
func checkSegment(name interfaces.ParameterName, v string) error {
	reason := ""
	switch {
	case v == "":
		return nil
	case v == "." || v == "..":
		reason = "is a relative path element"
	case strings.ContainsAny(v, "/\\\x00"):
		reason = "must not contain path separators"
	case strings.TrimSpace(v) != v:
		reason = "must not have leading or trailing spaces"
	default:
		return nil
	}
	return &interfaces.InvalidParameterError{Name: name, Value: v, Reason: reason}
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
