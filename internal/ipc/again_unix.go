//go:build unix

package ipc

import (
	"errors"

	"golang.org/x/sys/unix"
)

func isAgain(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EINTR)
}
