package menu

import (
	"github.com/example/syncmenu/internal/logging"
	"github.com/example/syncmenu/internal/protocol"
	"github.com/example/syncmenu/internal/selection"
)

// Builder folds decoded descriptors into a menu. Each descriptor becomes a
// leaf as soon as it is added.
type Builder struct {
	label  string
	paths  []string
	leaves []*Action
}

// NewBuilder starts a menu for sel. label names the submenu used when more
// than one action is offered.
func NewBuilder(label string, sel selection.Selection) *Builder {
	return &Builder{label: label, paths: sel.Paths()}
}

// Add creates the leaf for desc and returns it.
func (b *Builder) Add(desc protocol.Descriptor) *Action {
	action := &Action{
		ID:      ActionID(desc.Verb),
		Label:   desc.Label,
		Tooltip: desc.Tooltip,
		Verb:    desc.Verb,
		request: newInvocationRequest(desc.Verb, b.paths),
	}
	b.leaves = append(b.leaves, action)
	return action
}

// Len reports how many leaves were produced so far.
func (b *Builder) Len() int {
	return len(b.leaves)
}

// Build returns nil when no leaf was produced, the single leaf when there is
// exactly one, and otherwise a submenu holding every leaf in the order added.
func (b *Builder) Build() Node {
	switch len(b.leaves) {
	case 0:
		return nil
	case 1:
		return b.leaves[0]
	}

	children := make([]Node, len(b.leaves))
	for i, leaf := range b.leaves {
		children[i] = leaf
	}
	logging.Debugf("menu: grouping %d actions under %q", len(children), b.label)
	return &Submenu{Label: b.label, Children: children}
}

// Assemble builds the menu for descs in one pass.
func Assemble(label string, descs []protocol.Descriptor, sel selection.Selection) Node {
	b := NewBuilder(label, sel)
	for _, desc := range descs {
		b.Add(desc)
	}
	return b.Build()
}
