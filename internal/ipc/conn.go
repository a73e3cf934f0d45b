package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/example/syncmenu/internal/logging"
	"github.com/example/syncmenu/internal/protocol"
)

// Conn is a line-buffered daemon connection owned by a single exchange.
type Conn struct {
	raw    net.Conn
	reader *bufio.Reader
	writer *bufio.Writer
	name   string

	pending string
}

func newConn(raw net.Conn, name string) *Conn {
	return &Conn{
		raw:    raw,
		reader: bufio.NewReader(raw),
		writer: bufio.NewWriter(raw),
		name:   name,
	}
}

// NewConn wraps an established connection.
func NewConn(raw net.Conn) *Conn {
	name := "<conn>"
	if raw != nil && raw.RemoteAddr() != nil {
		name = raw.RemoteAddr().String()
	}
	return newConn(raw, name)
}

// Write sends payload as one logical write and flushes it.
func (c *Conn) Write(payload []byte) error {
	logging.LogRequest(c.name, payload)
	if _, err := c.writer.Write(payload); err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	if err := c.writer.Flush(); err != nil {
		return fmt.Errorf("flush request: %w", err)
	}
	return nil
}

// ReadLine returns the next line including its terminator. A trailing partial
// line is returned together with io.EOF. protocol.ErrAgain signals that the
// read should be retried.
func (c *Conn) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if c.pending != "" {
		line = c.pending + line
		c.pending = ""
	}
	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, io.EOF):
		return line, io.EOF
	case isAgain(err):
		c.pending = line
		return "", protocol.ErrAgain
	default:
		return line, err
	}
}

// Close releases the connection.
func (c *Conn) Close() error {
	return c.raw.Close()
}
