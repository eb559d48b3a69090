package params

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createInputs() map[string]string {
	return map[string]string{
		"DOMAIN_NAME":       "acme",
		"JAVA_HOME":         "/opt/jdk",
		"MW_HOME":           "/opt/mw",
		"WL_HOME":           "/opt/mw/wlserver",
		"FMW_HOME":          "/opt/fmw",
		"CFG_HOME":          "/u01/config",
		"ADMIN_SERVER_NAME": "AdminServer",
		"ADMIN_USERNAME":    "weblogic",
		"ADMIN_PASSWORD":    "welcome1",
		"NM_USERNAME":       "nodemanager",
		"NM_PASSWORD":       "nmpass",
		"NM_MODE":           "plain",
		"LDAP_PRINCIPAL":    "cn=svc-wls,ou=Service Accounts,dc=corp,dc=example,dc=com",
		"LDAP_PASSWORD":     "ldappass",
		"LDAP_HOST":         "ldap.corp.example.com",
	}
}

func TestResolve_Create(t *testing.T) {
	ps, err := Resolve(interfaces.OperationCreate, MapLookup(createInputs()))
	require.NoError(t, err)

	assert.Equal(t, "acme", ps.DomainName)
	assert.Equal(t, "/opt/jdk", ps.JavaHome)
	assert.Equal(t, "/u01/config", ps.CfgHome)
	assert.Equal(t, "plain", ps.NodeManagerMode)
	assert.Equal(t, DefaultLDAPProviderName, ps.LDAPProviderName)
	assert.Equal(t, DefaultServerStartMode, ps.ServerStartMode)
	assert.Equal(t, "/opt/mw/wlserver/common/templates/wls/wls.jar", ps.TemplatePath)
	assert.Empty(t, ps.LDAPUserBaseDN)
}

func TestResolve_MissingParameter(t *testing.T) {
	tests := []struct {
		name     string
		op       interfaces.Operation
		drop     []string
		expected interfaces.ParameterName
	}{
		{
			name:     "missing domain name",
			op:       interfaces.OperationCreate,
			drop:     []string{"DOMAIN_NAME"},
			expected: interfaces.ParamDomainName,
		},
		{
			name:     "first missing input is reported",
			op:       interfaces.OperationCreate,
			drop:     []string{"LDAP_HOST", "NM_PASSWORD"},
			expected: interfaces.ParamNodeManagerPassword,
		},
		{
			name:     "relayout still needs the config home",
			op:       interfaces.OperationRelayout,
			drop:     []string{"CFG_HOME"},
			expected: interfaces.ParamCfgHome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := createInputs()
			for _, k := range tt.drop {
				delete(inputs, k)
			}

			_, err := Resolve(tt.op, MapLookup(inputs))
			require.Error(t, err)
			assert.True(t, errors.Is(err, interfaces.ErrMissingParameter))

			var missing *interfaces.MissingParameterError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.expected, missing.Name)
		})
	}
}

func TestResolve_EmptyValueIsMissing(t *testing.T) {
	inputs := createInputs()
	inputs["JAVA_HOME"] = ""

	_, err := Resolve(interfaces.OperationCreate, MapLookup(inputs))
	var missing *interfaces.MissingParameterError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, interfaces.ParamJavaHome, missing.Name)
}

func TestResolve_NoLookupsAfterFirstMissing(t *testing.T) {
	var asked []string
	lookup := func(name string) (string, bool) {
		asked = append(asked, name)
		return "", false
	}

	_, err := Resolve(interfaces.OperationCreate, lookup)
	require.Error(t, err)
	// DOMAIN_NAME has no aliases, so exactly one lookup happens before failing.
	assert.Equal(t, []string{"DOMAIN_NAME"}, asked)
}

func TestResolve_LegacyAliases(t *testing.T) {
	inputs := createInputs()
	delete(inputs, "WL_HOME")
	delete(inputs, "CFG_HOME")
	inputs["WLS_HOME"] = "/legacy/wlserver"
	inputs["CFG_BASE"] = "/legacy/config/"

	ps, err := Resolve(interfaces.OperationCreate, MapLookup(inputs))
	require.NoError(t, err)
	assert.Equal(t, "/legacy/wlserver", ps.WLHome)
	assert.Equal(t, "/legacy/config", ps.CfgHome)
}

func TestResolve_CanonicalNameWinsOverAlias(t *testing.T) {
	inputs := createInputs()
	inputs["CFG_BASE"] = "/legacy/config"

	ps, err := Resolve(interfaces.OperationCreate, MapLookup(inputs))
	require.NoError(t, err)
	assert.Equal(t, "/u01/config", ps.CfgHome)
}

func TestResolve_Relayout(t *testing.T) {
	inputs := map[string]string{
		"DOMAIN_NAME": "acme",
		"JAVA_HOME":   "/opt/jdk",
		"MW_HOME":     "/opt/mw",
		"WL_HOME":     "/opt/mw/wlserver",
		"FMW_HOME":    "/opt/fmw",
		"CFG_HOME":    "/u01/config",
		"NM_MODE":     "secure",
	}

	ps, err := Resolve(interfaces.OperationRelayout, MapLookup(inputs))
	require.NoError(t, err)
	assert.Equal(t, DefaultAdminServerName, ps.AdminServerName)
	assert.Empty(t, ps.AdminPassword)
}

func TestResolve_BaseDNFallback(t *testing.T) {
	inputs := createInputs()
	inputs["LDAP_BASE_DN"] = "dc=corp,dc=example,dc=com"
	inputs["LDAP_GROUP_BASE_DN"] = "ou=Groups,dc=corp,dc=example,dc=com"

	ps, err := Resolve(interfaces.OperationCreate, MapLookup(inputs))
	require.NoError(t, err)
	assert.Equal(t, "dc=corp,dc=example,dc=com", ps.LDAPUserBaseDN)
	assert.Equal(t, "ou=Groups,dc=corp,dc=example,dc=com", ps.LDAPGroupBaseDN)
}

func TestResolve_UnknownOperation(t *testing.T) {
	_, err := Resolve(interfaces.Operation("delete"), MapLookup(createInputs()))
	assert.ErrorIs(t, err, interfaces.ErrUnknownOperation)
}

func TestChainLookup_Precedence(t *testing.T) {
	first := MapLookup(map[string]string{"DOMAIN_NAME": "from-flags", "EMPTY": ""})
	second := MapLookup(map[string]string{"DOMAIN_NAME": "from-file", "EMPTY": "from-file", "ONLY_FILE": "x"})
	lookup := ChainLookup(first, nil, second)

	v, ok := lookup("DOMAIN_NAME")
	assert.True(t, ok)
	assert.Equal(t, "from-flags", v)

	v, ok = lookup("EMPTY")
	assert.True(t, ok)
	assert.Equal(t, "from-file", v)

	_, ok = lookup("NOWHERE")
	assert.False(t, ok)
}

func TestFileLookup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	content := "DOMAIN_NAME: acme\nJAVA_HOME: /opt/jdk\nLDAP_PORT: 389\nUNSET:\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	lookup, err := FileLookup(path)
	require.NoError(t, err)

	v, ok := lookup("DOMAIN_NAME")
	assert.True(t, ok)
	assert.Equal(t, "acme", v)

	v, ok = lookup("LDAP_PORT")
	assert.True(t, ok)
	assert.Equal(t, "389", v)

	_, ok = lookup("UNSET")
	assert.False(t, ok)
}

func TestFileLookup_RejectsNestedValues(t *testing.T) {
	_, err := parseParameterFile([]byte("DOMAIN_NAME:\n  nested: true\n"))
	assert.Error(t, err)
}

func TestResolve_RejectsNamesOutsideTheirDirectory(t *testing.T) {
	tests := []struct {
		name  string
		input interfaces.ParameterName
		value string
	}{
		{name: "domain climbs out of cfg home", input: interfaces.ParamDomainName, value: "../../etc"},
		{name: "domain is parent", input: interfaces.ParamDomainName, value: ".."},
		{name: "domain is current", input: interfaces.ParamDomainName, value: "."},
		{name: "domain is absolute", input: interfaces.ParamDomainName, value: "/etc"},
		{name: "domain with backslash", input: interfaces.ParamDomainName, value: `acme\..\etc`},
		{name: "domain with trailing space", input: interfaces.ParamDomainName, value: "acme "},
		{name: "admin server nested", input: interfaces.ParamAdminServerName, value: "AdminServer/../../x"},
		{name: "provider nested", input: interfaces.ParamLDAPProviderName, value: "Corp/LDAP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, op := range []interfaces.Operation{interfaces.OperationCreate, interfaces.OperationRelayout} {
				inputs := createInputs()
				inputs[string(tt.input)] = tt.value

				_, err := Resolve(op, MapLookup(inputs))
				require.ErrorIs(t, err, interfaces.ErrInvalidParameter, op)

				var invalid *interfaces.InvalidParameterError
				require.True(t, errors.As(err, &invalid))
				assert.Equal(t, tt.input, invalid.Name)
				assert.Equal(t, tt.value, invalid.Value)
			}
		})
	}
}

func TestResolve_AcceptsPlainNames(t *testing.T) {
	inputs := createInputs()
	inputs["DOMAIN_NAME"] = "acme-prod.v2"
	inputs["ADMIN_SERVER_NAME"] = "Admin_Server"

	ps, err := Resolve(interfaces.OperationCreate, MapLookup(inputs))
	require.NoError(t, err)
	assert.Equal(t, "acme-prod.v2", ps.DomainName)
	assert.Equal(t, "Admin_Server", ps.AdminServerName)
}

func TestResolve_AdminServerNameDefaultsOnlyForRelayout(t *testing.T) {
	inputs := createInputs()
	delete(inputs, "ADMIN_SERVER_NAME")

	_, err := Resolve(interfaces.OperationCreate, MapLookup(inputs))
	var missing *interfaces.MissingParameterError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, interfaces.ParamAdminServerName, missing.Name)

	ps, err := Resolve(interfaces.OperationRelayout, MapLookup(inputs))
	require.NoError(t, err)
	assert.Equal(t, DefaultAdminServerName, ps.AdminServerName)
}
