package menu

import (
	"github.com/google/uuid"
)

// actionNamespace seeds the name-based UUIDs that identify action leaves.
var actionNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("syncmenu.action"))

// Node is an entry of an assembled context menu: either an *Action or a
// *Submenu.
type Node interface {
	isNode()
}

// Action is a menu leaf bound to a daemon verb and the selection it was built
// for.
type Action struct {
	ID      string
	Label   string
	Tooltip string
	Verb    string

	request InvocationRequest
}

func (*Action) isNode() {}

// Request returns a copy of the invocation the action is bound to.
func (a *Action) Request() InvocationRequest {
	if a == nil {
		return InvocationRequest{}
	}
	return a.request.clone()
}

// Submenu groups several actions under one label.
type Submenu struct {
	Label    string
	Children []Node
}

func (*Submenu) isNode() {}

// ActionID derives the stable identifier of the leaf for verb.
func ActionID(verb string) string {
	return uuid.NewSHA1(actionNamespace, []byte(verb)).String()
}

// Walk visits node and its descendants depth-first in menu order. depth is 0
// for the root.
func Walk(node Node, fn func(n Node, depth int)) {
	walk(node, 0, fn)
}

func walk(node Node, depth int, fn func(Node, int)) {
	switch n := node.(type) {
	case *Action:
		if n != nil {
			fn(n, depth)
		}
	case *Submenu:
		if n == nil {
			return
		}
		fn(n, depth)
		for _, child := range n.Children {
			walk(child, depth+1, fn)
		}
	}
}

// Leaves returns every action below node in menu order.
func Leaves(node Node) []*Action {
	var out []*Action
	Walk(node, func(n Node, _ int) {
		if a, ok := n.(*Action); ok {
			out = append(out, a)
		}
	})
	return out
}
