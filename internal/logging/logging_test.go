package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut := log.Writer()
	prevFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		DisableDebug()
	})
	return &buf
}

func TestDebugfSilentUntilEnabled(t *testing.T) {
	buf := captureLog(t)

	Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected no output before EnableDebug, got %q", buf.String())
	}

	EnableDebug()
	Debugf("shown %d", 2)
	if !strings.Contains(buf.String(), "[DEBUG] shown 2") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestLogRequestDescribesPayload(t *testing.T) {
	buf := captureLog(t)
	EnableDebug()

	LogRequest("unix:///tmp/sock", []byte("done\n"))
	out := buf.String()
	if !strings.Contains(out, "unix:///tmp/sock") {
		t.Fatalf("expected endpoint in output, got %q", out)
	}
	if !strings.Contains(out, "(utf-8, 5 bytes)") {
		t.Fatalf("expected utf-8 payload description, got %q", out)
	}
}

func TestDescribePayloadFallsBackToBase64(t *testing.T) {
	got := describePayload([]byte{0xff, 0xfe})
	if !strings.HasPrefix(got, "(base64, 2 bytes)") {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestMaskPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/a", want: "/a"},
		{in: "/home/user/Dropbox/report.pdf", want: "…/Dropbox/report.pdf"},
	}

	for _, tt := range tests {
		if got := MaskPath(tt.in); got != tt.want {
			t.Fatalf("MaskPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
