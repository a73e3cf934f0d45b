// Package client runs the context-menu exchange with the sync daemon: it asks
// which actions apply to a selection, turns the reply into a menu, and relays
// chosen actions back.
package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/syncmenu/internal/config"
	"github.com/example/syncmenu/internal/ipc"
	"github.com/example/syncmenu/internal/logging"
	"github.com/example/syncmenu/internal/menu"
	"github.com/example/syncmenu/internal/protocol"
	"github.com/example/syncmenu/internal/selection"
)

// Client talks to one daemon endpoint. It holds no per-query state and may be
// shared between goroutines.
type Client struct {
	endpoint ipc.Endpoint
	label    string
	timeout  time.Duration
}

// New constructs a Client from configuration.
func New(cfg *config.Config) *Client {
	if cfg == nil {
		cfg = config.Default()
	}

	endpoint := ipc.DefaultEndpoint()
	if cfg.Socket != "" {
		endpoint = ipc.SocketEndpoint(cfg.Socket)
	}

	label := cfg.Label
	if label == "" {
		label = config.DefaultLabel
	}
	return &Client{endpoint: endpoint, label: label, timeout: cfg.Timeout}
}

// NewWithEndpoint constructs a Client for an explicit endpoint.
func NewWithEndpoint(endpoint ipc.Endpoint, label string, timeout time.Duration) *Client {
	if label == "" {
		label = config.DefaultLabel
	}
	return &Client{endpoint: endpoint, label: label, timeout: timeout}
}

// Endpoint exposes the daemon endpoint for logging and diagnostics.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Query asks the daemon which actions apply to sel and assembles them. A nil
// Node with a nil error means there is nothing to show. The only error
// returned is a failure to reach the daemon; a reply cut short still yields
// the actions received before the cut.
func (c *Client) Query(ctx context.Context, sel selection.Selection) (menu.Node, error) {
	if sel.Len() == 0 {
		logging.Debugf("client: empty selection, skipping daemon query")
		return nil, nil
	}

	logging.Debugf("client: querying %s for %d paths starting at %s", c.endpoint.String(), sel.Len(), logging.MaskPath(sel[0].Path))
	conn, err := c.endpoint.Dial(ctx, c.timeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.Write(protocol.EncodeQuery(sel.ResolvedPaths())); err != nil {
		// The decoder observes the broken connection on its next read.
		logging.Debugf("client: %v", err)
	}

	res := protocol.Decode(conn)
	if res.State == protocol.StateErrored {
		logging.Debugf("client: reply from %s incomplete after %d actions: %v", c.endpoint.String(), len(res.Descriptors), res.Err)
	}
	if res.Dropped > 0 {
		logging.Debugf("client: dropped %d malformed descriptors", res.Dropped)
	}

	return menu.Assemble(c.label, res.Descriptors, sel), nil
}

// QueryPaths is Query for plain filesystem paths.
func (c *Client) QueryPaths(ctx context.Context, paths []string) (menu.Node, error) {
	return c.Query(ctx, selection.FromPaths(paths))
}

// InvokeVerb asks the daemon to run verb on paths over a fresh connection. It
// returns once the request is written; the daemon's answer is not awaited.
func (c *Client) InvokeVerb(ctx context.Context, verb string, paths []string) error {
	if verb == "" {
		return errors.New("client: empty verb")
	}

	conn, err := c.endpoint.Dial(ctx, c.timeout)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.Write(protocol.EncodeAction(verb, paths)); err != nil {
		return fmt.Errorf("invoke %s: %w", verb, err)
	}
	logging.Debugf("client: sent verb %s for %d paths", verb, len(paths))
	return nil
}

// Activate fires action through this client and logs failures instead of
// returning them, matching how menu hosts call back.
func (c *Client) Activate(ctx context.Context, action *menu.Action) {
	if err := menu.Activate(ctx, c, action); err != nil {
		log.Printf("syncmenu: %v", err)
	}
}
