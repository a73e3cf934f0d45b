package logging

import (
	"encoding/base64"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

var debugEnabled atomic.Bool

// EnableDebug turns on verbose debug logging for the daemon exchange.
func EnableDebug() {
	debugEnabled.Store(true)
	log.Printf("[DEBUG] debug logging enabled")
}

// DisableDebug switches debug logging back off.
func DisableDebug() {
	debugEnabled.Store(false)
}

// DebugEnabled reports whether debug logging is active.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf emits a formatted debug log message when debugging is enabled.
func Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	log.Printf("[DEBUG] "+format, args...)
}

// LogRequest emits the raw bytes of an outbound daemon request when debugging
// is enabled.
func LogRequest(endpoint string, payload []byte) {
	if !DebugEnabled() {
		return
	}

	if endpoint == "" {
		endpoint = "<unknown>"
	}
	log.Printf("[DEBUG] daemon request to %s", endpoint)
	if len(payload) > 0 {
		log.Printf("[DEBUG] --> request payload %s", describePayload(payload))
	}
}

// LogResponseLine emits a single inbound response line when debugging is
// enabled.
func LogResponseLine(line string) {
	if !DebugEnabled() {
		return
	}
	log.Printf("[DEBUG] <-- response line %s", describePayload([]byte(strings.TrimRight(line, "\r\n"))))
}

func describePayload(body []byte) string {
	if utf8.Valid(body) {
		return fmt.Sprintf("(utf-8, %d bytes): %q", len(body), string(body))
	}

	encoded := base64.StdEncoding.EncodeToString(body)
	return fmt.Sprintf("(base64, %d bytes): %s", len(body), encoded)
}

// MaskPath shortens a filesystem path for log output, keeping only the final
// two elements visible.
func MaskPath(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}

	dir, base := filepath.Split(filepath.Clean(trimmed))
	parent := filepath.Base(dir)
	if parent == "." || parent == string(filepath.Separator) || parent == "" {
		return trimmed
	}
	return filepath.Join("…", parent, base)
}
