package provisioner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ruteri/weblogic-domain-provisioner/artifacts"
	"github.com/ruteri/weblogic-domain-provisioner/filegen"
	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
	"github.com/ruteri/weblogic-domain-provisioner/layout"
	"github.com/ruteri/weblogic-domain-provisioner/params"
	"github.com/ruteri/weblogic-domain-provisioner/realm"
	"github.com/ruteri/weblogic-domain-provisioner/storage"
)

var ErrRunStarted = errors.New("provisioner already started a run")

type Options struct {
	// StepTimeout bounds every session step. Zero blocks until the step completes.
	StepTimeout time.Duration
	// Archive receives a copy of every generated file. Optional.
	Archive interfaces.ArchiveBackend
	// DNSResolver is used to expand srv: LDAP hosts.
	DNSResolver string
}

// Status is a snapshot of a run's progress.
type Status struct {
	Operation interfaces.Operation
	State     State
	Completed []string
	// ManifestID is set once the run's manifest is archived.
	ManifestID string
	Err        error
}

type Provisioner struct {
	session interfaces.DomainSession
	files   *filegen.Generator
	opts    Options
	log     *slog.Logger

	mu        sync.Mutex
	started   bool
	operation interfaces.Operation
	state     State
	completed []string
	manifest  string
	err       error
}

// New creates a provisioner. session may be nil for relayout runs.
func New(session interfaces.DomainSession, files *filegen.Generator, opts Options, log *slog.Logger) *Provisioner {
	return &Provisioner{
		session: session,
		files:   files,
		opts:    opts,
		log:     log,
	}
}

// Status returns the current progress of the run.
func (p *Provisioner) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		Operation:  p.operation,
		State:      p.state,
		Completed:  append([]string{}, p.completed...),
		ManifestID: p.manifest,
		Err:        p.err,
	}
}

// State returns the last state reached.
func (p *Provisioner) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Provision resolves the inputs of op, derives the path layout and runs op.
// Input errors are returned before the session or the filesystem is touched.
func (p *Provisioner) Provision(ctx context.Context, op interfaces.Operation, lookup params.LookupFunc) error {
	ps, err := params.Resolve(op, lookup)
	if err != nil {
		return err
	}

	if op == interfaces.OperationCreate {
		if ps.LDAPHost, err = realm.ResolveLDAPHosts(ps.LDAPHost, p.opts.DNSResolver); err != nil {
			return err
		}
	}

	p.log.Info("CREATE PATHS", "params", ps)
	paths := layout.Build(ps)

	return p.Run(ctx, op, ps, paths)
}

// Run executes op for a resolved parameter set and its layout.
func (p *Provisioner) Run(ctx context.Context, op interfaces.Operation, ps interfaces.ParameterSet, paths interfaces.PathLayout) (err error) {
	if err := p.begin(op); err != nil {
		return err
	}
	defer func() {
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
	}()

	switch op {
	case interfaces.OperationCreate:
		if p.session == nil {
			return errors.New("create requires a domain session")
		}
		r := &run{session: p.session, params: ps, paths: paths}
		for _, s := range createSteps {
			if err := p.runStep(ctx, s, r); err != nil {
				return err
			}
		}
	case interfaces.OperationRelayout:
	default:
		return fmt.Errorf("%w: %q", interfaces.ErrUnknownOperation, op)
	}

	return p.createFiles(ctx, op, ps, paths)
}

// Create runs the full workflow.
func (p *Provisioner) Create(ctx context.Context, ps interfaces.ParameterSet, paths interfaces.PathLayout) error {
	return p.Run(ctx, interfaces.OperationCreate, ps, paths)
}

// Relayout regenerates the readme and the node manager properties of an existing domain.
func (p *Provisioner) Relayout(ctx context.Context, ps interfaces.ParameterSet, paths interfaces.PathLayout) error {
	return p.Run(ctx, interfaces.OperationRelayout, ps, paths)
}

func (p *Provisioner) begin(op interfaces.Operation) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return ErrRunStarted
	}
	p.started = true
	p.operation = op
	return nil
}

func (p *Provisioner) runStep(ctx context.Context, s step, r *run) error {
	p.mu.Lock()
	current := p.state
	p.mu.Unlock()
	if current != s.from {
		return &StepError{Step: s.name, State: current, Err: fmt.Errorf("%w: %s requires %s", interfaces.ErrInvalidTransition, s.name, s.from)}
	}

	for _, msg := range s.narration {
		p.log.Info(msg, "step", s.name)
	}

	stepCtx := ctx
	if p.opts.StepTimeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, p.opts.StepTimeout)
		defer cancel()
	}

	if err := s.do(stepCtx, r); err != nil {
		p.log.Error("Provisioning step failed", "step", s.name, "state", current.String(), "err", err)
		return &StepError{Step: s.name, State: current, Err: err}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := transition(&p.state, s.from, s.to); err != nil {
		return &StepError{Step: s.name, State: p.state, Err: err}
	}
	p.completed = append(p.completed, s.name)
	p.log.Debug("Provisioning step completed", "step", s.name, "state", p.state.String())
	return nil
}

func (p *Provisioner) createFiles(ctx context.Context, op interfaces.Operation, ps interfaces.ParameterSet, paths interfaces.PathLayout) error {
	state := p.State()
	fail := func(err error) error {
		return &StepError{Step: StepCreateFiles, State: state, Err: err}
	}

	p.log.Info("CREATE FILES", "step", StepCreateFiles)
	files, err := artifacts.Plan(op, ps, paths)
	if err != nil {
		return fail(err)
	}

	manifest := &storage.Manifest{Domain: ps.DomainName, Operation: op}
	for _, f := range files {
		if err := p.files.WriteFile(f); err != nil {
			return fail(err)
		}
		id, archived, err := p.archive(ctx, f)
		if err != nil {
			return fail(err)
		}
		if archived {
			manifest.Files = append(manifest.Files, storage.ManifestEntry{Path: f.Path(), Kind: f.Kind(), ID: id})
		}
	}

	if err := p.archiveManifest(ctx, manifest); err != nil {
		return fail(err)
	}

	p.mu.Lock()
	p.completed = append(p.completed, StepCreateFiles)
	p.mu.Unlock()
	return nil
}

// archive stores a copy of f. Failures follow the file generator's write policy;
// archived is false when the copy was skipped.
func (p *Provisioner) archive(ctx context.Context, f interfaces.GeneratedFile) (id interfaces.ArtifactID, archived bool, err error) {
	if p.opts.Archive == nil {
		return id, false, nil
	}

	id, err = p.opts.Archive.Put(ctx, []byte(f.Content), f.Kind())
	if err != nil {
		return id, false, p.archiveFailure(fmt.Errorf("could not archive %s: %w", f.Name, err))
	}

	p.log.Info("Archived generated file", "file", f.Path(), "id", id.Short(), "kind", f.Kind().String())
	return id, true, nil
}

func (p *Provisioner) archiveManifest(ctx context.Context, m *storage.Manifest) error {
	if p.opts.Archive == nil || len(m.Files) == 0 {
		return nil
	}

	data, err := m.Bytes()
	if err != nil {
		return err
	}
	id, err := p.opts.Archive.Put(ctx, data, interfaces.KindConfig)
	if err != nil {
		return p.archiveFailure(fmt.Errorf("could not archive manifest: %w", err))
	}

	p.mu.Lock()
	p.manifest = id.String()
	p.mu.Unlock()
	p.log.Info("Archived run manifest", "manifest", id.String(), "files", len(m.Files))
	return nil
}

func (p *Provisioner) archiveFailure(err error) error {
	if p.files.Policy() == interfaces.WritePolicyPropagate {
		return err
	}
	p.log.Error("Failed to archive, continuing", "err", err)
	return nil
}
