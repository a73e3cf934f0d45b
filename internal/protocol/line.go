package protocol

import "strings"

// Kind classifies a single response line.
type Kind int

const (
	KindActionBatch Kind = iota
	KindDone
	KindOK
	KindNotOK
)

func (k Kind) String() string {
	switch k {
	case KindDone:
		return "done"
	case KindOK:
		return "ok"
	case KindNotOK:
		return "notok"
	default:
		return "batch"
	}
}

// Line is a classified response line. Fields holds the descriptor fields of an
// action batch with the leading tag removed.
type Line struct {
	Kind   Kind
	Tag    string
	Fields []string
}

// Descriptor is one action offered by the daemon.
type Descriptor struct {
	Label   string
	Tooltip string
	Verb    string
}

// ClassifyLine interprets raw, with or without its line terminator.
func ClassifyLine(raw string) Line {
	line := strings.TrimRight(raw, "\r\n")
	switch line {
	case LineDone:
		return Line{Kind: KindDone}
	case LineOK:
		return Line{Kind: KindOK}
	case LineNotOK:
		return Line{Kind: KindNotOK}
	}

	parts := strings.Split(line, FieldSeparator)
	return Line{Kind: KindActionBatch, Tag: parts[0], Fields: parts[1:]}
}

// ParseDescriptor splits one action batch field into its label, tooltip and
// verb. Any field that does not carry exactly three parts is rejected.
func ParseDescriptor(field string) (Descriptor, bool) {
	parts := strings.Split(field, DescriptorSeparator)
	if len(parts) != 3 {
		return Descriptor{}, false
	}
	return Descriptor{Label: parts[0], Tooltip: parts[1], Verb: parts[2]}, true
}
