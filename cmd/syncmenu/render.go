package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/syncmenu/internal/menu"
)

var (
	colorBold   = color.New(color.Bold)
	colorCyan   = color.New(color.FgCyan)
	colorYellow = color.New(color.FgYellow)
)

func printMenu(w io.Writer, node menu.Node) {
	if node == nil {
		fmt.Fprintln(w, "No actions available")
		return
	}

	menu.Walk(node, func(n menu.Node, depth int) {
		indent := strings.Repeat("  ", depth)
		switch v := n.(type) {
		case *menu.Submenu:
			fmt.Fprintf(w, "%s%s\n", indent, colorBold.Sprintf("%s/", v.Label))
		case *menu.Action:
			fmt.Fprintf(w, "%s%s  %s  %s\n", indent, colorCyan.Sprint(v.Label), colorYellow.Sprintf("[%s]", v.Verb), v.Tooltip)
		}
	})
}
