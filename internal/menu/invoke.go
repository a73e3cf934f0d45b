package menu

import (
	"context"
	"errors"

	"github.com/example/syncmenu/internal/logging"
)

// InvocationRequest is what the daemon receives when an action fires.
type InvocationRequest struct {
	Verb  string
	Paths []string
}

func newInvocationRequest(verb string, paths []string) InvocationRequest {
	return InvocationRequest{Verb: verb, Paths: paths}.clone()
}

func (r InvocationRequest) clone() InvocationRequest {
	out := InvocationRequest{Verb: r.Verb}
	if r.Paths != nil {
		out.Paths = make([]string, len(r.Paths))
		copy(out.Paths, r.Paths)
	}
	return out
}

// Invoker delivers a verb invocation to the daemon.
type Invoker interface {
	InvokeVerb(ctx context.Context, verb string, paths []string) error
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, verb string, paths []string) error

// InvokeVerb calls f.
func (f InvokerFunc) InvokeVerb(ctx context.Context, verb string, paths []string) error {
	return f(ctx, verb, paths)
}

// Activate hands the request bound to action to invoker. It does not wait for
// the daemon's answer and never retries. A nil action is a no-op.
func Activate(ctx context.Context, invoker Invoker, action *Action) error {
	if action == nil {
		return nil
	}
	if invoker == nil {
		return errors.New("menu: no invoker configured")
	}

	req := action.Request()
	logging.Debugf("menu: activating %q (verb=%s, %d paths)", action.Label, req.Verb, len(req.Paths))
	return invoker.InvokeVerb(ctx, req.Verb, req.Paths)
}
