package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultSocketRel = ".dropbox/command_socket"

// ErrConnect wraps every failure to reach the daemon.
var ErrConnect = errors.New("ipc: daemon unreachable")

// Endpoint describes where the sync daemon listens for commands.
type Endpoint struct {
	Network string
	Address string
}

// DefaultEndpoint resolves the daemon socket using environment overrides.
func DefaultEndpoint() Endpoint {
	if addr := strings.TrimSpace(os.Getenv("SYNCMENU_DAEMON_SOCKET")); addr != "" {
		return SocketEndpoint(addr)
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.Getenv("HOME")
	}
	return SocketEndpoint(filepath.Join(home, defaultSocketRel))
}

// SocketEndpoint returns a unix socket endpoint for path.
func SocketEndpoint(path string) Endpoint {
	return Endpoint{Network: "unix", Address: path}
}

// Listen binds to the configured endpoint.
func (e Endpoint) Listen() (net.Listener, error) {
	return net.Listen(e.Network, e.Address)
}

// Dial connects to the daemon. The returned connection carries a deadline for
// the whole exchange: the earlier of now+timeout and the context deadline.
func (e Endpoint) Dial(ctx context.Context, timeout time.Duration) (*Conn, error) {
	d := &net.Dialer{Timeout: 5 * time.Second}
	raw, err := d.DialContext(ctx, e.Network, e.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", ErrConnect, e.String(), err)
	}

	if deadline, ok := exchangeDeadline(ctx, time.Now(), timeout); ok {
		_ = raw.SetDeadline(deadline)
	}
	return newConn(raw, e.String()), nil
}

func exchangeDeadline(ctx context.Context, now time.Time, timeout time.Duration) (time.Time, bool) {
	var deadline time.Time
	if timeout > 0 {
		deadline = now.Add(timeout)
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (deadline.IsZero() || ctxDeadline.Before(deadline)) {
		deadline = ctxDeadline
	}
	return deadline, !deadline.IsZero()
}

// String provides a readable representation for logs.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s://%s", e.Network, e.Address)
}
