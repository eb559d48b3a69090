package flags

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ruteri/weblogic-domain-provisioner/common"
	"github.com/ruteri/weblogic-domain-provisioner/httpserver"
	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
	"github.com/ruteri/weblogic-domain-provisioner/params"
	"github.com/ruteri/weblogic-domain-provisioner/realm"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(LogDebugFlag.Name),
		JSON:    cCtx.Bool(LogJsonFlag.Name),
		Service: cCtx.String(LogServiceFlag.Name),
		Version: common.Version,
	})

	if cCtx.Bool(LogUidFlag.Name) {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger) *httpserver.HTTPServerConfig {
	return &httpserver.HTTPServerConfig{
		ListenAddr:               cCtx.String(ListenAddrFlag.Name),
		Log:                      logger,
		EnablePprof:              cCtx.Bool(PprofFlag.Name),
		DrainDuration:            time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}

// parameterNames are the inputs that can be given as flags. Each flag is named after the
// input in lower case with dashes and reads the environment variable of the same name.
var parameterNames = []interfaces.ParameterName{
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
	interfaces.ParamLDAPProviderName,
	interfaces.ParamLDAPBaseDN,
	interfaces.ParamLDAPUserBaseDN,
	interfaces.ParamLDAPGroupBaseDN,
	interfaces.ParamServerStartMode,
	interfaces.ParamTemplatePath,
}

func flagName(name interfaces.ParameterName) string {
	return strings.ReplaceAll(strings.ToLower(string(name)), "_", "-")
}

func parameterFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(parameterNames))
	for _, name := range parameterNames {
		flags = append(flags, &cli.StringFlag{
			Name:     flagName(name),
			Usage:    fmt.Sprintf("provisioning input %s", name),
			EnvVars:  []string{string(name)},
			Category: "Domain inputs:",
		})
	}
	return flags
}

// Lookup resolves inputs from flags and their environment variables first, then from the
// parameters file. Legacy alias names are read from the environment only.
func Lookup(cCtx *cli.Context) (params.LookupFunc, error) {
	flagLookup := func(name string) (string, bool) {
		for _, known := range parameterNames {
			if string(known) == name {
				v := cCtx.String(flagName(known))
				return v, v != ""
			}
		}
		return "", false
	}

	aliasLookup := func(name string) (string, bool) {
		for _, aliases := range params.Aliases {
			for _, alias := range aliases {
				if alias == name {
					return params.EnvLookup()(name)
				}
			}
		}
		return "", false
	}

	var fileLookup params.LookupFunc
	if path := cCtx.String(ParamsFileFlag.Name); path != "" {
		var err error
		if fileLookup, err = params.FileLookup(path); err != nil {
			return nil, err
		}
	}

	return params.ChainLookup(flagLookup, aliasLookup, fileLookup), nil
}

// ArchiveLocations parses the archive URIs.
func ArchiveLocations(cCtx *cli.Context) ([]interfaces.ArchiveLocation, error) {
	var locations []interfaces.ArchiveLocation
	for _, uri := range cCtx.StringSlice(ArchiveFlag.Name) {
		loc, err := interfaces.ParseArchiveLocation(uri)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

var ParamsFileFlag = &cli.StringFlag{
	Name:    "params-file",
	Usage:   "YAML file with provisioning inputs, consulted after flags and environment",
	EnvVars: []string{"PARAMS_FILE"},
}

var StepTimeoutFlag = &cli.DurationFlag{
	Name:    "step-timeout",
	Value:   0,
	Usage:   "bound on every configuration step. 0 blocks until the step completes",
	EnvVars: []string{"STEP_TIMEOUT"},
}

var WritePolicyFlag = &cli.StringFlag{
	Name:    "write-policy",
	Value:   interfaces.WritePolicyLogOnly.String(),
	Usage:   "what to do when a generated file cannot be closed cleanly: log-only or propagate",
	EnvVars: []string{"WRITE_POLICY"},
}

var WLSTPathFlag = &cli.StringFlag{
	Name:    "wlst-path",
	Usage:   "path to wlst.sh. Defaults to <WL_HOME>/common/bin/wlst.sh",
	EnvVars: []string{"WLST_PATH"},
}

var DryRunFlag = &cli.BoolFlag{
	Name:    "dry-run",
	Usage:   "write the WLST batches to <CFG_HOME>/domains/.provisioning instead of executing them",
	EnvVars: []string{"DRY_RUN"},
}

var ArchiveFlag = &cli.StringSliceFlag{
	Name:    "archive",
	Usage:   "archive URI for copies of generated files (file://, s3://, ipfs://, vault://). Repeatable",
	EnvVars: []string{"ARCHIVE"},
}

var DNSResolverFlag = &cli.StringFlag{
	Name:    "dns-resolver",
	Value:   realm.DefaultResolver,
	Usage:   "DNS server used to expand srv: LDAP hosts",
	EnvVars: []string{"DNS_RESOLVER"},
}

var ListenAddrFlag = &cli.StringFlag{
	Name:    "listen-addr",
	Value:   "127.0.0.1:8080",
	Usage:   "address to listen on for API",
	EnvVars: []string{"LISTEN_ADDR"},
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}
var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: common.PackageName,
	Usage: "add 'service' tag to logs",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}

var LogFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	LogServiceFlag,
}

var RuntimeFlags = []cli.Flag{
	ParamsFileFlag,
	StepTimeoutFlag,
	WritePolicyFlag,
	WLSTPathFlag,
	DryRunFlag,
	ArchiveFlag,
	DNSResolverFlag,
}

var RestoreFlags = []cli.Flag{
	ArchiveFlag,
	WritePolicyFlag,
}

var ServerFlags = []cli.Flag{
	ListenAddrFlag,
	PprofFlag,
	DrainSecondsFlag,
}

// ParameterFlags has one flag per provisioning input.
var ParameterFlags = parameterFlags()
