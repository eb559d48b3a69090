package wlst

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/ruteri/weblogic-domain-provisioner/filegen"
)

// DefaultWLSTPath is relative to WL_HOME.
const DefaultWLSTPath = "common/bin/wlst.sh"

// Runner executes WLST batches.
type Runner interface {
	Run(ctx context.Context, script Script) error
}

// ExecRunner runs each batch with the wlst.sh interpreter.
type ExecRunner struct {
	WLSTPath string
	log      *slog.Logger
}

func NewExecRunner(wlstPath string, log *slog.Logger) *ExecRunner {
	return &ExecRunner{WLSTPath: wlstPath, log: log}
}

// Run writes the batch to a private temporary file and executes it. Secrets are passed
// through the process environment only.
func (r *ExecRunner) Run(ctx context.Context, script Script) error {
	f, err := os.CreateTemp("", script.Name+"-*.py")
	if err != nil {
		return fmt.Errorf("could not create script file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(script.Body); err != nil {
		f.Close()
		return fmt.Errorf("could not write script file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not write script file: %w", err)
	}

	cmd := exec.CommandContext(ctx, r.WLSTPath, f.Name())
	cmd.Env = os.Environ()
	for k, v := range script.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	r.log.Debug("Running WLST batch", "script", script.Name, "wlst", r.WLSTPath)
	if err := cmd.Run(); err != nil {
		r.log.Error("WLST batch failed", "script", script.Name, "output", output.String())
		return fmt.Errorf("wlst batch %s failed: %w", script.Name, err)
	}
	r.log.Debug("WLST batch finished", "script", script.Name, "output", output.String())
	return nil
}

// DryRunRunner keeps the batches on disk instead of executing them.
// Secret values are not written; the scripts still reference them by environment name.
type DryRunRunner struct {
	gen *filegen.Generator
	dir string
}

func NewDryRunRunner(gen *filegen.Generator, dir string) *DryRunRunner {
	return &DryRunRunner{gen: gen, dir: dir}
}

func (r *DryRunRunner) Run(ctx context.Context, script Script) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.gen.Write(r.dir, script.Name+".py", script.Body)
}
