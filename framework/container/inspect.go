package container

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Node is one contract in a dependency tree.
type Node struct {
	Contract       reflect.Type `json:"-"`
	Name           string       `json:"contract"`
	Implementation string       `json:"implementation"`
	Dependencies   []*Node      `json:"dependencies,omitempty"`
}

// String renders the tree with two spaces of indent per level.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	fmt.Fprintf(b, "%s%s => %s\n", strings.Repeat("  ", depth), n.Name, n.Implementation)
	for _, dep := range n.Dependencies {
		dep.write(b, depth+1)
	}
}

// Describe returns the dependency tree of contract without calling any
// constructor. It fails the same way Resolve would on missing contracts,
// unusable implementations and cycles. Contracts of deferred providers
// that have not been loaded yet appear as leaves.
func (c *Container) Describe(contract reflect.Type) (*Node, error) {
	return c.describe(contract, nil)
}

func (c *Container) describe(contract reflect.Type, path []reflect.Type) (*Node, error) {
	if contract == nil {
		return nil, &LookupError{Path: slices.Clone(path)}
	}
	if slices.Contains(path, contract) {
		return nil, &CycleError{Path: append(slices.Clone(path), contract)}
	}

	implementation, ok := c.registration(contract)
	if !ok {
		return nil, &LookupError{Contract: contract, Path: slices.Clone(path)}
	}

	node := &Node{Contract: contract, Name: fmt.Sprint(contract)}
	if loader, ok := implementation.(*deferredLoader); ok {
		node.Implementation = "deferred " + loader.name
		return node, nil
	}

	d, err := describe(implementation)
	if err != nil {
		return nil, constructionError(contract, d, err)
	}
	// Interface results are only checked once built.
	if impl := d.implementation; impl.Kind() != reflect.Interface && !impl.AssignableTo(contract) {
		return nil, constructionError(contract, d, fmt.Errorf("%w: %v does not satisfy %v", ErrNotAssignable, impl, contract))
	}
	node.Implementation = fmt.Sprint(d.implementation)
	if d.constructor != "" {
		node.Implementation += " via " + d.constructor
	}

	path = append(path, contract)
	for _, param := range d.params {
		dep, err := c.describe(param, path)
		if err != nil {
			return nil, err
		}
		node.Dependencies = append(node.Dependencies, dep)
	}
	return node, nil
}

// Validate describes every registered contract and joins all failures in
// contract order. It returns nil when every registration is resolvable.
func (c *Container) Validate() error {
	var errs []error
	for _, contract := range c.Contracts() {
		if _, err := c.Describe(contract); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
