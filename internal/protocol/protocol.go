// Package protocol implements the line-oriented command protocol spoken on the
// sync daemon's local socket.
//
// A request is a command line followed by tab-separated argument lines and a
// closing "done" line. The daemon answers with zero or more lines and the same
// "done" terminator. Context-menu replies carry action batches: a tab-separated
// line whose first field is a tag and whose remaining fields are
// tilde-separated label/tooltip/verb descriptors.
package protocol

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// CommandContextOptions asks which context actions apply to a set of paths.
	CommandContextOptions = "icon_overlay_context_options"
	// CommandContextAction runs a verb against a set of paths.
	CommandContextAction = "icon_overlay_context_action"

	MarkerPaths = "paths"
	MarkerVerb  = "verb"

	LineDone  = "done"
	LineOK    = "ok"
	LineNotOK = "notok"

	FieldSeparator      = "\t"
	DescriptorSeparator = "~"
)

// ErrAgain is reported by a LineReader when no line is available yet and the
// read should simply be retried.
var ErrAgain = errors.New("protocol: read would block")

// EncodeQuery frames a context-options request for paths. Paths that cannot be
// carried on a single protocol line are skipped.
func EncodeQuery(paths []string) []byte {
	var b strings.Builder
	b.WriteString(CommandContextOptions)
	b.WriteString("\n")
	writePaths(&b, paths)
	b.WriteString(LineDone)
	b.WriteString("\n")
	return []byte(b.String())
}

// EncodeAction frames a verb invocation for paths.
func EncodeAction(verb string, paths []string) []byte {
	var b strings.Builder
	b.WriteString(CommandContextAction)
	b.WriteString("\n")
	b.WriteString(MarkerVerb)
	b.WriteString(FieldSeparator)
	b.WriteString(verb)
	b.WriteString("\n")
	writePaths(&b, paths)
	b.WriteString(LineDone)
	b.WriteString("\n")
	return []byte(b.String())
}

// ValidPath reports whether p can be sent as a path argument.
func ValidPath(p string) bool {
	if p == "" || !utf8.ValidString(p) {
		return false
	}
	return !strings.ContainsAny(p, "\t\r\n")
}

func writePaths(b *strings.Builder, paths []string) {
	b.WriteString(MarkerPaths)
	for _, p := range paths {
		if !ValidPath(p) {
			continue
		}
		b.WriteString(FieldSeparator)
		b.WriteString(p)
	}
	b.WriteString("\n")
}
