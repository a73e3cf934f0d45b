//go:build !cgo && !windows
// +build !cgo,!windows

package menu

import (
	"context"
	"errors"
)

// Run returns an error indicating tray functionality is unavailable without cgo.
func (t *Tray) Run(_ context.Context, _ Node) error {
	return errors.New("system tray is unavailable without cgo support")
}
