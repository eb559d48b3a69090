package interfaces

import (
	"fmt"
	"path"
)

// GeneratedFile is a derived artifact materialized on disk by the file generator.
type GeneratedFile struct {
	Dir     string
	Name    string
	Content string
	// Secret files are archived as KindSecret.
	Secret bool
}

// Path returns Dir/Name.
func (f GeneratedFile) Path() string {
	return path.Join(f.Dir, f.Name)
}

// Kind returns the archive namespace of the file.
func (f GeneratedFile) Kind() ArtifactKind {
	if f.Secret {
		return KindSecret
	}
	return KindConfig
}

// WritePolicy decides what happens when a file handle cannot be released cleanly.
type WritePolicy int

const (
	// WritePolicyLogOnly logs failures to flush or close a file and reports success.
	// Failures to create the directory, open the file or write its content are still returned.
	WritePolicyLogOnly WritePolicy = iota
	// WritePolicyPropagate returns every failure to the caller.
	WritePolicyPropagate
)

func (p WritePolicy) String() string {
	switch p {
	case WritePolicyLogOnly:
		return "log-only"
	case WritePolicyPropagate:
		return "propagate"
	default:
		return "unknown"
	}
}

// ParseWritePolicy parses the flag form of a write policy.
func ParseWritePolicy(s string) (WritePolicy, error) {
	switch s {
	case "log-only", "":
		return WritePolicyLogOnly, nil
	case "propagate":
		return WritePolicyPropagate, nil
	default:
		return 0, fmt.Errorf("unknown write policy %q", s)
	}
}
