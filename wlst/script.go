package wlst

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// Script is one WLST batch. Secret values never appear in Body; they are read from Env.
type Script struct {
	Name string
	Body string
	Env  map[string]string
}

// batch records the WLST commands equivalent to the session calls made so far.
type batch struct {
	name    string
	lines   []string
	secrets []string
	cwd     string
}

func newBatch(name string) *batch {
	return &batch{name: name, lines: []string{"import os", ""}, cwd: "/"}
}

func (b *batch) add(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

func (b *batch) cd(address string) {
	if b.cwd == address {
		return
	}
	b.add("cd(%s)", quote(address))
	b.cwd = address
}

// value renders v as a Jython expression.
func (b *batch) value(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "None", nil
	case string:
		return quote(val), nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case int:
		return strconv.Itoa(val), nil
	case interfaces.Secret:
		key := fmt.Sprintf("WLST_SECRET_%d", len(b.secrets))
		b.secrets = append(b.secrets, string(val))
		return fmt.Sprintf("os.environ[%s]", quote(key)), nil
	default:
		return "", fmt.Errorf("unsupported attribute value type %T", v)
	}
}

func (b *batch) script() Script {
	env := make(map[string]string, len(b.secrets))
	for i, s := range b.secrets {
		env[fmt.Sprintf("WLST_SECRET_%d", i)] = s
	}
	body := strings.Join(append(b.lines, "exit()"), "\n") + "\n"
	return Script{Name: b.name, Body: body, Env: env}
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}
