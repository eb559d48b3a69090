package filegen

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"
	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// Filesystem is the part of a billy filesystem the generator needs.
type Filesystem interface {
	billy.Basic
	billy.Dir
}

const (
	dirMode  os.FileMode = 0755
	fileMode os.FileMode = 0640
)

type Generator struct {
	fs     Filesystem
	policy interfaces.WritePolicy
	log    *slog.Logger
}

// New returns a generator writing to fs.
func New(fs Filesystem, policy interfaces.WritePolicy, log *slog.Logger) *Generator {
	return &Generator{fs: fs, policy: policy, log: log}
}

// NewOS returns a generator writing to the host filesystem with absolute paths.
func NewOS(policy interfaces.WritePolicy, log *slog.Logger) *Generator {
	return New(&osfs.ChrootOS{}, policy, log)
}

// Policy returns the generator's write policy.
func (g *Generator) Policy() interfaces.WritePolicy {
	return g.policy
}

// Write creates or overwrites dir/name with content.
// An existing directory is not an error. The content is written to a hidden sibling
// and renamed over the target, so a failed write leaves the previous file untouched.
func (g *Generator) Write(dir, name, content string) error {
	if err := g.fs.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("could not create directory %s: %w", dir, err)
	}

	path := g.fs.Join(dir, name)
	tmp := g.fs.Join(dir, "."+name+"."+uuid.NewString()+".tmp")
	if err := g.writeTemp(tmp, content); err != nil {
		g.discard(tmp)
		return fmt.Errorf("could not write %s: %w", path, err)
	}

	g.log.Info("WRITING FILE "+name, slog.String("path", path))
	if err := g.fs.Rename(tmp, path); err != nil {
		g.discard(tmp)
		return fmt.Errorf("could not replace %s: %w", path, err)
	}
	return nil
}

// writeTemp writes content to a new file and always releases the handle.
func (g *Generator) writeTemp(tmp, content string) (err error) {
	f, err := g.fs.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, fileMode)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); cerr != nil {
			cerr = fmt.Errorf("could not close %s: %w", tmp, cerr)
			if err != nil {
				g.log.Error("Failed to release file handle", "err", cerr)
				return
			}
			err = g.releaseFailure(cerr)
		}
	}()

	_, err = io.WriteString(f, content)
	return err
}

func (g *Generator) discard(tmp string) {
	if err := g.fs.Remove(tmp); err != nil && !os.IsNotExist(err) {
		g.log.Warn("Failed to remove temporary file", slog.String("path", tmp), "err", err)
	}
}

// WriteFile writes a planned file.
func (g *Generator) WriteFile(f interfaces.GeneratedFile) error {
	return g.Write(f.Dir, f.Name, f.Content)
}

func (g *Generator) releaseFailure(err error) error {
	if g.policy == interfaces.WritePolicyPropagate {
		return err
	}
	g.log.Error("Failed to release file handle, continuing", "err", err, slog.String("policy", g.policy.String()))
	return nil
}
