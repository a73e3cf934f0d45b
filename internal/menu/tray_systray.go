//go:build cgo || windows
// +build cgo windows

package menu

import (
	"context"
	"sync"

	"github.com/getlantern/systray"
)

type systrayState struct {
	mu      sync.Mutex
	cancels []context.CancelFunc
}

// Run shows root in the system tray until ctx is canceled or the user quits.
func (t *Tray) Run(ctx context.Context, root Node) error {
	done := make(chan struct{})
	state := &systrayState{}

	go systray.Run(func() {
		systray.SetTitle(t.tooltip)
		systray.SetTooltip(t.tooltip)

		t.render(ctx, state, planTray(root))
		systray.AddSeparator()

		quit := systray.AddMenuItem("Quit", "Close the menu")
		go func() {
			select {
			case <-ctx.Done():
			case <-quit.ClickedCh:
			}
			systray.Quit()
		}()
	}, func() {
		state.shutdown()
		close(done)
	})

	select {
	case <-ctx.Done():
		systray.Quit()
		<-done
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (t *Tray) render(ctx context.Context, state *systrayState, entries []trayEntry) {
	items := make([]*systray.MenuItem, len(entries))
	for i, entry := range entries {
		var mi *systray.MenuItem
		if entry.parent < 0 {
			mi = systray.AddMenuItem(entry.label, entry.tooltip)
		} else {
			mi = items[entry.parent].AddSubMenuItem(entry.label, entry.tooltip)
		}
		items[i] = mi

		if entry.disabled {
			mi.Disable()
		}

		ctxItem, cancel := context.WithCancel(ctx)
		state.add(cancel)
		if entry.action == nil {
			go drainClicks(ctxItem, mi.ClickedCh)
			continue
		}
		go func(ch <-chan struct{}, action *Action) {
			for {
				select {
				case <-ctxItem.Done():
					return
				case _, ok := <-ch:
					if !ok {
						return
					}
					go t.activate(ctx, action)
				}
			}
		}(mi.ClickedCh, entry.action)
	}
}

func drainClicks(ctx context.Context, ch <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
		}
	}
}

func (s *systrayState) add(cancel context.CancelFunc) {
	s.mu.Lock()
	s.cancels = append(s.cancels, cancel)
	s.mu.Unlock()
}

func (s *systrayState) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}
