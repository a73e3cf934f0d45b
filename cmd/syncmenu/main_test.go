package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/example/syncmenu/internal/daemontest"
	"github.com/example/syncmenu/internal/menu"
	"github.com/example/syncmenu/internal/protocol"
	"github.com/example/syncmenu/internal/selection"
)

func init() {
	color.NoColor = true
}

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("SYNCMENU_CONFIG_PATH", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("SYNCMENU_DAEMON_SOCKET", "")
	t.Setenv("SYNCMENU_DEBUG", "")
}

func TestParseGlobalFlagsStopsAtCommand(t *testing.T) {
	var out bytes.Buffer
	opts, rest, err := parseGlobalFlags([]string{"--socket", "/run/s.sock", "--timeout", "3s", "query", "--debug", "/a"}, &out)
	if err != nil {
		t.Fatalf("parseGlobalFlags returned error: %v", err)
	}
	if opts.socket != "/run/s.sock" || opts.timeout != 3*time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.debug {
		t.Fatalf("flags after the command must not be parsed globally")
	}
	if len(rest) != 3 || rest[0] != "query" {
		t.Fatalf("unexpected remaining args %#v", rest)
	}
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	isolateConfig(t)
	cfg, err := loadConfig(globalOptions{socket: "/run/x.sock", label: "Sync", timeout: time.Second})
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.Socket != "/run/x.sock" || cfg.Label != "Sync" || cfg.Timeout != time.Second {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadReply(t *testing.T) {
	got, err := loadReply("", `opt\tA~a~1\ndone`)
	if err != nil {
		t.Fatalf("loadReply returned error: %v", err)
	}
	if got != "opt\tA~a~1\ndone\n" {
		t.Fatalf("unexpected reply %q", got)
	}
	if _, err := loadReply("", ""); err == nil {
		t.Fatalf("expected error without a reply source")
	}
}

func TestPrintMenu(t *testing.T) {
	descs := []protocol.Descriptor{
		{Label: "Foo", Tooltip: "ToolFoo", Verb: "v1"},
		{Label: "Bar", Tooltip: "ToolBar", Verb: "v2"},
	}
	var out bytes.Buffer
	printMenu(&out, menu.Assemble("Dropbox", descs, selection.FromPaths([]string{"/a"})))

	want := "Dropbox/\n  Foo  [v1]  ToolFoo\n  Bar  [v2]  ToolBar\n"
	if out.String() != want {
		t.Fatalf("printMenu output = %q, want %q", out.String(), want)
	}

	out.Reset()
	printMenu(&out, nil)
	if out.String() != "No actions available\n" {
		t.Fatalf("unexpected empty output %q", out.String())
	}
}

func TestRunQueryAgainstFakeDaemon(t *testing.T) {
	isolateConfig(t)
	srv := daemontest.Start(t, daemontest.Static("opt\tFoo~ToolFoo~v1\ndone\n"))

	var out bytes.Buffer
	err := run(context.Background(), []string{"--socket", srv.Endpoint().Address, "query", "/nonexistent/a"}, &out)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Foo  [v1]  ToolFoo") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunInvokeAgainstFakeDaemon(t *testing.T) {
	isolateConfig(t)
	srv := daemontest.Start(t, daemontest.Static("ok\ndone\n"))

	var out bytes.Buffer
	err := run(context.Background(), []string{"--socket", srv.Endpoint().Address, "invoke", "--verb", "share", "/nonexistent/a"}, &out)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	reqs := srv.WaitForRequests(1, time.Second)
	if len(reqs) != 1 || reqs[0].Verb() != "share" {
		t.Fatalf("unexpected requests %+v", reqs)
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	isolateConfig(t)
	var out bytes.Buffer
	if err := run(context.Background(), []string{"bogus"}, &out); err == nil {
		t.Fatalf("expected error for unknown command")
	}
	if err := run(context.Background(), nil, &out); err == nil {
		t.Fatalf("expected error without a command")
	}
}
