package menu

import (
	"context"
	"log"
)

const emptyMenuLabel = "No actions available"

// Tray renders an assembled menu in the system tray and activates the bound
// action when an entry is clicked.
type Tray struct {
	invoker Invoker
	tooltip string
}

// NewTray constructs a Tray that fires actions through invoker.
func NewTray(invoker Invoker, tooltip string) *Tray {
	return &Tray{invoker: invoker, tooltip: tooltip}
}

// trayEntry is one rendered row. parent indexes the submenu row it belongs to,
// or is -1 for top-level rows.
type trayEntry struct {
	parent   int
	label    string
	tooltip  string
	action   *Action
	disabled bool
}

func planTray(root Node) []trayEntry {
	var entries []trayEntry
	parents := []int{-1}

	Walk(root, func(n Node, depth int) {
		parents = parents[:depth+1]
		parent := parents[depth]
		switch v := n.(type) {
		case *Action:
			entries = append(entries, trayEntry{parent: parent, label: v.Label, tooltip: v.Tooltip, action: v})
		case *Submenu:
			entries = append(entries, trayEntry{parent: parent, label: v.Label})
			parents = append(parents, len(entries)-1)
		}
	})

	if len(entries) == 0 {
		entries = append(entries, trayEntry{parent: -1, label: emptyMenuLabel, disabled: true})
	}
	return entries
}

func (t *Tray) activate(ctx context.Context, action *Action) {
	if err := Activate(ctx, t.invoker, action); err != nil {
		logActivationError(action, err)
	}
}

func logActivationError(action *Action, err error) {
	log.Printf("syncmenu: action %q failed: %v", action.Label, err)
}
