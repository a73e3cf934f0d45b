package protocol

import (
	"errors"
	"fmt"
	"io"

	"github.com/example/syncmenu/internal/logging"
)

// ErrUnterminated reports a reply that ended before its "done" line.
var ErrUnterminated = errors.New("protocol: reply ended before terminator")

// LineReader yields response lines one at a time. It returns ErrAgain when the
// caller should retry and io.EOF at end of stream.
type LineReader interface {
	ReadLine() (string, error)
}

// State is the decoder's position in a reply.
type State int

const (
	StateReading State = iota
	StateDone
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateReading:
		return "reading"
	case StateDone:
		return "done"
	default:
		return "errored"
	}
}

// Result is the outcome of decoding one reply. Descriptors parsed before an
// error are kept.
type Result struct {
	Descriptors []Descriptor
	State       State
	Err         error
	Dropped     int
}

// Decoder accumulates descriptors from response lines until the terminator.
type Decoder struct {
	state   State
	descs   []Descriptor
	dropped int
	err     error
}

// NewDecoder returns a decoder in the reading state.
func NewDecoder() *Decoder {
	return &Decoder{state: StateReading}
}

// State reports the current state.
func (d *Decoder) State() State {
	return d.state
}

// Feed consumes one response line and reports whether more lines are wanted.
// Lines fed after the decoder left StateReading are ignored.
func (d *Decoder) Feed(raw string) bool {
	if d.state != StateReading {
		return false
	}

	line := ClassifyLine(raw)
	switch line.Kind {
	case KindDone:
		d.state = StateDone
		return false
	case KindOK, KindNotOK:
		return true
	}

	for _, field := range line.Fields {
		desc, ok := ParseDescriptor(field)
		if !ok {
			d.dropped++
			logging.Debugf("protocol: dropping malformed descriptor %q", field)
			continue
		}
		d.descs = append(d.descs, desc)
	}
	return true
}

// Fail moves the decoder to StateErrored.
func (d *Decoder) Fail(err error) {
	if d.state != StateReading {
		return
	}
	d.state = StateErrored
	d.err = err
}

// Result returns what has been decoded so far.
func (d *Decoder) Result() Result {
	out := make([]Descriptor, len(d.descs))
	copy(out, d.descs)
	return Result{Descriptors: out, State: d.state, Err: d.err, Dropped: d.dropped}
}

// Decode reads from r until the terminator, end of stream or a read error.
func Decode(r LineReader) Result {
	d := NewDecoder()
	for d.State() == StateReading {
		line, err := r.ReadLine()
		if errors.Is(err, ErrAgain) {
			continue
		}
		if line != "" && completeLine(line, err) {
			logging.LogResponseLine(line)
			if !d.Feed(line) {
				break
			}
		} else if line != "" {
			logging.Debugf("protocol: discarding partial line %q: %v", line, err)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				d.Fail(ErrUnterminated)
			} else {
				d.Fail(fmt.Errorf("read reply: %w", err))
			}
			break
		}
	}
	return d.Result()
}

// completeLine reports whether line may be decoded. A line that arrives with a
// read error may be cut short, so only a bare terminator is accepted at end of
// stream and nothing is accepted after any other error.
func completeLine(line string, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, io.EOF):
		return ClassifyLine(line).Kind == KindDone
	default:
		return false
	}
}
