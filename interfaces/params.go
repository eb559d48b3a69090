package interfaces

import (
	"errors"
	"fmt"
	"log/slog"
)

// ParameterName is the external name of a provisioning input.
type ParameterName string

// Required and optional provisioning inputs.
const (
	ParamDomainName          ParameterName = "DOMAIN_NAME"
	ParamJavaHome            ParameterName = "JAVA_HOME"
	ParamMWHome              ParameterName = "MW_HOME"
	ParamWLHome              ParameterName = "WL_HOME"
	ParamFMWHome             ParameterName = "FMW_HOME"
	ParamCfgHome             ParameterName = "CFG_HOME"
	ParamAdminServerName     ParameterName = "ADMIN_SERVER_NAME"
	ParamAdminUsername       ParameterName = "ADMIN_USERNAME"
	ParamAdminPassword       ParameterName = "ADMIN_PASSWORD"
	ParamNodeManagerUsername ParameterName = "NM_USERNAME"
	ParamNodeManagerPassword ParameterName = "NM_PASSWORD"
	ParamNodeManagerMode     ParameterName = "NM_MODE"
	ParamLDAPPrincipal       ParameterName = "LDAP_PRINCIPAL"
	ParamLDAPPassword        ParameterName = "LDAP_PASSWORD"
	ParamLDAPHost            ParameterName = "LDAP_HOST"

	ParamLDAPProviderName ParameterName = "LDAP_PROVIDER_NAME"
	ParamLDAPBaseDN       ParameterName = "LDAP_BASE_DN"
	ParamLDAPUserBaseDN   ParameterName = "LDAP_USER_BASE_DN"
	ParamLDAPGroupBaseDN  ParameterName = "LDAP_GROUP_BASE_DN"
	ParamServerStartMode  ParameterName = "SERVER_START_MODE"
	ParamTemplatePath     ParameterName = "TEMPLATE_PATH"
)

// Operation selects which provisioning workflow runs.
type Operation string

const (
	// OperationCreate builds a new domain from the base template and emits all derived files.
	OperationCreate Operation = "create"
	// OperationRelayout rewrites the file layout of an existing domain without opening a session.
	OperationRelayout Operation = "relayout"
)

// ParseOperation validates an operation tag.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case OperationCreate, OperationRelayout:
		return Operation(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
	}
}

// ParameterSet is the validated input of a provisioning run.
// It is built once by the parameter resolver and passed by value afterwards.
type ParameterSet struct {
	DomainName string
	JavaHome   string
	MWHome     string
	WLHome     string
	FMWHome    string
	CfgHome    string

	AdminServerName string
	AdminUsername   string
	AdminPassword   string

	NodeManagerUsername string
	NodeManagerPassword string
	NodeManagerMode     string

	LDAPPrincipal    string
	LDAPPassword     string
	LDAPHost         string
	LDAPProviderName string
	LDAPUserBaseDN   string
	LDAPGroupBaseDN  string

	ServerStartMode string
	TemplatePath    string
}

// LogValue keeps credentials out of log records.
func (p ParameterSet) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("domain", p.DomainName),
		slog.String("cfgHome", p.CfgHome),
		slog.String("javaHome", p.JavaHome),
		slog.String("wlHome", p.WLHome),
		slog.String("adminServer", p.AdminServerName),
		slog.String("nodeManagerMode", p.NodeManagerMode),
		slog.String("ldapHost", p.LDAPHost),
	)
}

// ErrMissingParameter is the kind of every MissingParameterError.
var ErrMissingParameter = errors.New("missing parameter")

// ErrInvalidParameter is the kind of every InvalidParameterError.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrUnknownOperation is returned for an operation tag other than create or relayout.
var ErrUnknownOperation = errors.New("unknown operation")

// MissingParameterError names the first required input that did not resolve to a non-empty value.
type MissingParameterError struct {
	Name ParameterName
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingParameter.Error(), e.Name)
}

func (e *MissingParameterError) Unwrap() error { return ErrMissingParameter }

// MissingParameter builds the error for name.
func MissingParameter(name ParameterName) error {
	return &MissingParameterError{Name: name}
}

// InvalidParameterError rejects an input whose value cannot be used, such as a name that
// would leave the configuration home when joined into a path.
type InvalidParameterError struct {
	Name   ParameterName
	Value  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%q %s", ErrInvalidParameter.Error(), e.Name, e.Value, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }
