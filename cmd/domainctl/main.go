package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"slices"
	"syscall"

	"github.com/ruteri/weblogic-domain-provisioner/cmd/flags"
	"github.com/ruteri/weblogic-domain-provisioner/filegen"
	"github.com/ruteri/weblogic-domain-provisioner/httpserver"
	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
	"github.com/ruteri/weblogic-domain-provisioner/layout"
	"github.com/ruteri/weblogic-domain-provisioner/params"
	"github.com/ruteri/weblogic-domain-provisioner/provisioner"
	"github.com/ruteri/weblogic-domain-provisioner/storage"
	"github.com/ruteri/weblogic-domain-provisioner/wlst"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func main() {
	app := &cli.App{
		Name:  "domainctl",
		Usage: "Provision WebLogic domains",
		Flags: flags.LogFlags,
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "create a new domain and write its derived files",
				Flags:  slices.Concat(flags.ParameterFlags, flags.RuntimeFlags),
				Action: runOperation(interfaces.OperationCreate),
			},
			{
				Name:   "relayout",
				Usage:  "rewrite readme.txt and nodemanager.properties of an existing domain",
				Flags:  slices.Concat(flags.ParameterFlags, flags.RuntimeFlags),
				Action: runOperation(interfaces.OperationRelayout),
			},
			{
				Name:   "layout",
				Usage:  "print the paths derived from the inputs",
				Flags:  append(slices.Clone(flags.ParameterFlags), flags.ParamsFileFlag),
				Action: printLayout,
			},
			{
				Name:      "restore",
				Usage:     "rewrite the files of an archived run from its manifest",
				ArgsUsage: "<manifest-id>",
				Flags:     flags.RestoreFlags,
				Action:    restore,
			},
			{
				Name:   "serve",
				Usage:  "serve the provisioning API",
				Flags:  slices.Concat(flags.ServerFlags, flags.ParameterFlags, flags.RuntimeFlags),
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runOperation(op interfaces.Operation) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		logger := flags.SetupLogger(cCtx)

		lookup, err := flags.Lookup(cCtx)
		if err != nil {
			return err
		}

		p, err := newProvisioner(cCtx, logger, op, lookup)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := p.Provision(ctx, op, lookup); err != nil {
			return err
		}

		status := p.Status()
		logger.Info("Provisioning finished", "operation", string(op), "state", status.State.String(), "steps", status.Completed, "manifest", status.ManifestID)
		return nil
	}
}

// newProvisioner wires a provisioner for one run of op. Inputs are resolved up front to
// locate wlst.sh and the dry-run directory; resolution errors are returned before anything
// is created.
func newProvisioner(cCtx *cli.Context, logger *slog.Logger, op interfaces.Operation, lookup params.LookupFunc) (*provisioner.Provisioner, error) {
	ps, err := params.Resolve(op, lookup)
	if err != nil {
		return nil, err
	}
	paths := layout.Build(ps)

	policy, err := interfaces.ParseWritePolicy(cCtx.String(flags.WritePolicyFlag.Name))
	if err != nil {
		return nil, err
	}
	files := filegen.NewOS(policy, logger)

	opts := provisioner.Options{
		StepTimeout: cCtx.Duration(flags.StepTimeoutFlag.Name),
		DNSResolver: cCtx.String(flags.DNSResolverFlag.Name),
	}

	if opts.Archive, err = openArchive(cCtx, logger); err != nil {
		return nil, err
	}

	var session interfaces.DomainSession
	if op == interfaces.OperationCreate {
		var runner wlst.Runner
		if cCtx.Bool(flags.DryRunFlag.Name) {
			dir := path.Join(path.Dir(paths.DomainHome), ".provisioning")
			logger.Info("Dry run, WLST batches are kept instead of executed", "dir", dir)
			runner = wlst.NewDryRunRunner(files, dir)
		} else {
			wlstPath := cCtx.String(flags.WLSTPathFlag.Name)
			if wlstPath == "" {
				wlstPath = path.Join(ps.WLHome, wlst.DefaultWLSTPath)
			}
			runner = wlst.NewExecRunner(wlstPath, logger)
		}
		session = wlst.NewSession(runner, logger)
	}

	return provisioner.New(session, files, opts, logger), nil
}

// openArchive returns nil when no --archive is given.
func openArchive(cCtx *cli.Context, logger *slog.Logger) (interfaces.ArchiveBackend, error) {
	locations, err := flags.ArchiveLocations(cCtx)
	if err != nil || len(locations) == 0 {
		return nil, err
	}
	archive, err := storage.Open(locations, logger)
	if err != nil {
		return nil, fmt.Errorf("could not open archive: %w", err)
	}
	return archive, nil
}

func restore(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	if cCtx.NArg() != 1 {
		return cli.Exit("restore takes exactly one manifest id", 2)
	}
	manifestID, err := interfaces.ParseArtifactID(cCtx.Args().First())
	if err != nil {
		return err
	}

	policy, err := interfaces.ParseWritePolicy(cCtx.String(flags.WritePolicyFlag.Name))
	if err != nil {
		return err
	}

	archive, err := openArchive(cCtx, logger)
	if err != nil {
		return err
	}
	if archive == nil {
		return errors.New("restore requires at least one --archive")
	}

	ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	manifest, err := provisioner.Restore(ctx, archive, filegen.NewOS(policy, logger), manifestID, logger)
	if err != nil {
		return err
	}
	logger.Info("Restore finished", "domain", manifest.Domain, "operation", string(manifest.Operation), "files", len(manifest.Files))
	return nil
}

func printLayout(cCtx *cli.Context) error {
	lookup, err := flags.Lookup(cCtx)
	if err != nil {
		return err
	}

	ps, err := params.Resolve(interfaces.OperationRelayout, lookup)
	if err != nil {
		return err
	}
	paths := layout.Build(ps)

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(map[string]string{
		"domain_home":         paths.DomainHome,
		"application_home":    paths.ApplicationHome,
		"node_manager_home":   paths.NodeManagerHome,
		"template_path":       paths.TemplatePath,
		"boot_properties_dir": paths.BootPropertiesDir,
		"realm_path":          interfaces.RealmPath(ps.DomainName, interfaces.DefaultRealm),
	})
}

func serve(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	lookup, err := flags.Lookup(cCtx)
	if err != nil {
		return err
	}

	factory := func(op interfaces.Operation, lookup params.LookupFunc) (httpserver.Provisioner, error) {
		return newProvisioner(cCtx, logger, op, lookup)
	}

	server := httpserver.New(flags.ConfigureServer(cCtx, logger), httpserver.NewHandler(factory, lookup, logger))
	server.RunInBackground()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

	logger.Info("Server is running, press Ctrl+C to stop")
	<-exit
	logger.Info("Shutdown signal received")

	server.Shutdown()
	logger.Info("Server shutdown complete")
	return nil
}
