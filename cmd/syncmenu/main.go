package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/example/syncmenu/internal/client"
	"github.com/example/syncmenu/internal/config"
	"github.com/example/syncmenu/internal/daemontest"
	"github.com/example/syncmenu/internal/ipc"
	"github.com/example/syncmenu/internal/logging"
	"github.com/example/syncmenu/internal/menu"
	"github.com/example/syncmenu/internal/selection"
)

type globalOptions struct {
	configPath string
	socket     string
	label      string
	timeout    time.Duration
	debug      bool
}

func main() {
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, rest, err := parseGlobalFlags(args, out)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errors.New("no command provided (query, invoke, tray, fake-daemon)")
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.Debug {
		logging.EnableDebug()
	}

	command := normalizeCommand(rest[0])
	switch command {
	case "query":
		return handleQuery(ctx, cfg, rest[1:], out)
	case "invoke":
		return handleInvoke(ctx, cfg, rest[1:], out)
	case "tray":
		return handleTray(ctx, cfg, rest[1:], out)
	case "fake-daemon":
		return handleFakeDaemon(ctx, cfg, rest[1:], out)
	default:
		return fmt.Errorf("unknown command: %s", rest[0])
	}
}

func parseGlobalFlags(args []string, out io.Writer) (globalOptions, []string, error) {
	var opts globalOptions
	fs := newFlagSet("syncmenu", out)
	fs.SetInterspersed(false)
	fs.StringVar(&opts.configPath, "config", "", "path to the YAML configuration file")
	fs.StringVar(&opts.socket, "socket", "", "daemon command socket path")
	fs.StringVar(&opts.label, "label", "", "label of the submenu grouping several actions")
	fs.DurationVar(&opts.timeout, "timeout", 0, "deadline for one daemon exchange")
	fs.BoolVar(&opts.debug, "debug", false, "enable verbose protocol logging")

	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}
	return opts, fs.Args(), nil
}

func loadConfig(opts globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.socket != "" {
		cfg.Socket = opts.socket
	}
	if opts.label != "" {
		cfg.Label = opts.label
	}
	if opts.timeout > 0 {
		cfg.Timeout = opts.timeout
	}
	if opts.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func normalizeCommand(arg string) string {
	trimmed := strings.TrimLeft(arg, "-/")
	return strings.ToLower(trimmed)
}

func handleQuery(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := newFlagSet("query", out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := client.New(cfg)
	node, err := c.Query(ctx, selection.FromLocations(fs.Args()))
	if err != nil {
		return err
	}
	printMenu(out, node)
	return nil
}

func handleInvoke(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := newFlagSet("invoke", out)
	verb := fs.String("verb", "", "daemon verb to run")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *verb == "" {
		return errors.New("missing --verb for invoke")
	}

	sel := selection.FromLocations(fs.Args())
	if err := client.New(cfg).InvokeVerb(ctx, *verb, sel.Paths()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Sent %s for %d paths\n", *verb, sel.Len())
	return nil
}

func handleTray(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := newFlagSet("tray", out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := client.New(cfg)
	node, err := c.Query(ctx, selection.FromLocations(fs.Args()))
	if err != nil {
		return err
	}

	err = menu.NewTray(c, cfg.Label).Run(ctx, node)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func handleFakeDaemon(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := newFlagSet("fake-daemon", out)
	replyFile := fs.String("reply", "", "file holding the reply sent for every request")
	replyText := fs.String("reply-text", "", "reply text; \\t and \\n escapes are expanded")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reply, err := loadReply(*replyFile, *replyText)
	if err != nil {
		return err
	}

	endpoint := ipc.DefaultEndpoint()
	if cfg.Socket != "" {
		endpoint = ipc.SocketEndpoint(cfg.Socket)
	}

	srv, err := daemontest.Listen(endpoint, func(req daemontest.Request) string {
		log.Printf("fake-daemon: %s (%d paths)", req.Command, len(req.Paths()))
		return reply
	})
	if err != nil {
		return err
	}
	defer srv.Close()

	fmt.Fprintf(out, "Fake daemon listening on %s\n", endpoint.String())
	<-ctx.Done()
	return nil
}

func loadReply(file, text string) (string, error) {
	var reply string
	switch {
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read reply: %w", err)
		}
		reply = string(raw)
	case text != "":
		reply = strings.NewReplacer(`\t`, "\t", `\n`, "\n").Replace(text)
	default:
		return "", errors.New("fake-daemon requires --reply or --reply-text")
	}

	if !strings.HasSuffix(reply, "\n") {
		reply += "\n"
	}
	return reply, nil
}

func newFlagSet(name string, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}
