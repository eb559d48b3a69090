package wlst

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// node is one configuration object. Children are grouped by kind and kept in creation order.
type node struct {
	kind     string
	name     string
	attrs    map[string]any
	kinds    []string
	children map[string][]*node
}

func newNode(kind, name string) *node {
	return &node{
		kind:     kind,
		name:     name,
		attrs:    map[string]any{"Name": name},
		children: map[string][]*node{},
	}
}

func (n *node) child(kind, name string) *node {
	for _, c := range n.children[kind] {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *node) add(kind, name string) (*node, error) {
	if n.child(kind, name) != nil {
		return nil, fmt.Errorf("%w: %s %s", interfaces.ErrChildExists, kind, name)
	}
	c := newNode(kind, name)
	if _, ok := n.children[kind]; !ok {
		n.kinds = append(n.kinds, kind)
	}
	n.children[kind] = append(n.children[kind], c)
	return c, nil
}

// ensure returns the child, creating it if needed.
func (n *node) ensure(kind, name string) *node {
	if c := n.child(kind, name); c != nil {
		return c
	}
	c, _ := n.add(kind, name)
	return c
}

func (n *node) names(kind string) []string {
	names := make([]string, 0, len(n.children[kind]))
	for _, c := range n.children[kind] {
		names = append(names, c.name)
	}
	return names
}

func (n *node) rename(parent *node, name string) error {
	if name == n.name {
		return nil
	}
	if parent.child(n.kind, name) != nil {
		return fmt.Errorf("%w: %s %s", interfaces.ErrChildExists, n.kind, name)
	}
	n.name = name
	n.attrs["Name"] = name
	return nil
}

func (n *node) clone() *node {
	c := &node{
		kind:     n.kind,
		name:     n.name,
		attrs:    maps.Clone(n.attrs),
		kinds:    slices.Clone(n.kinds),
		children: make(map[string][]*node, len(n.children)),
	}
	for kind, list := range n.children {
		cloned := make([]*node, 0, len(list))
		for _, child := range list {
			cloned = append(cloned, child.clone())
		}
		c.children[kind] = cloned
	}
	return c
}

// splitAddress turns /Kind/name/Kind/name into its segments. The root is "/".
func splitAddress(address string) ([]string, error) {
	if !strings.HasPrefix(address, "/") {
		return nil, fmt.Errorf("%w: %q is not absolute", interfaces.ErrNoSuchPath, address)
	}
	trimmed := strings.Trim(address, "/")
	if trimmed == "" {
		return nil, nil
	}
	segments := strings.Split(trimmed, "/")
	if len(segments)%2 != 0 {
		return nil, fmt.Errorf("%w: %q does not alternate kind and name", interfaces.ErrNoSuchPath, address)
	}
	return segments, nil
}

// resolve returns the node at address and its parent. The root has no parent.
func (n *node) resolve(address string) (target, parent *node, err error) {
	segments, err := splitAddress(address)
	if err != nil {
		return nil, nil, err
	}

	target = n
	for i := 0; i < len(segments); i += 2 {
		next := target.child(segments[i], segments[i+1])
		if next == nil {
			return nil, nil, fmt.Errorf("%w: %s", interfaces.ErrNoSuchPath, address)
		}
		parent, target = target, next
	}
	return target, parent, nil
}

func joinAddress(parent string, segments ...string) string {
	return strings.TrimSuffix(parent, "/") + "/" + strings.Join(segments, "/")
}
