// Package keyhook adapts the global keyboard hook to hotkey events.
package keyhook

import (
	"context"
	"log"
	"sort"
	"strings"
	"unicode"

	hook "github.com/robotn/gohook"

	"github.com/micoverlay/micoverlay/internal/hotkey"
)

// names maps hook keycodes to their shortest registered name, so "ctrl" is
// preferred over "lctrl".
var names = buildNames()

func buildNames() map[uint16]string {
	all := make([]string, 0, len(hook.Keycode))
	for name := range hook.Keycode {
		all = append(all, name)
	}
	sort.Slice(all, func(i, j int) bool {
		if len(all[i]) != len(all[j]) {
			return len(all[i]) < len(all[j])
		}
		return all[i] < all[j]
	})

	out := make(map[uint16]string, len(all))
	for _, name := range all {
		code := hook.Keycode[name]
		if _, ok := out[code]; !ok {
			out[code] = name
		}
	}
	return out
}

// KeyName returns the token for a hook key event, or "" when unknown.
func KeyName(ev hook.Event) string {
	if name, ok := names[ev.Keycode]; ok {
		return name
	}
	if name := hook.RawcodetoKeychar(ev.Rawcode); name != "" {
		return strings.ToLower(name)
	}
	if ev.Keychar != hook.CharUndefined && unicode.IsPrint(ev.Keychar) {
		return strings.ToLower(string(ev.Keychar))
	}
	return ""
}

// Translate converts a hook event to a key event. Only key presses
// (including autorepeat) and releases are reported.
func Translate(ev hook.Event) (hotkey.Event, bool) {
	var down bool
	switch ev.Kind {
	case hook.KeyHold:
		down = true
	case hook.KeyUp:
		down = false
	default:
		return hotkey.Event{}, false
	}
	name := KeyName(ev)
	if name == "" {
		return hotkey.Event{}, false
	}
	return hotkey.Event{Key: name, Down: down}, true
}

// Listen starts the global hook and streams key events until ctx is done.
// Only one listener may run per process.
func Listen(ctx context.Context) <-chan hotkey.Event {
	out := make(chan hotkey.Event, 64)
	raw := hook.Start()
	log.Printf("[keyhook] Global key hook started")

	go func() {
		defer close(out)
		defer func() {
			hook.End()
			log.Printf("[keyhook] Global key hook stopped")
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-raw:
				if !ok {
					return
				}
				kev, ok := Translate(ev)
				if !ok {
					continue
				}
				select {
				case out <- kev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Record captures one combo from the global hook: keys pressed until all of
// them are released.
func Record(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return record(ctx, Listen(ctx))
}

func record(ctx context.Context, events <-chan hotkey.Event) ([]string, error) {
	rec := hotkey.NewRecorder()
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil, context.Canceled
			}
			if rec.Handle(ev) {
				return rec.Combo(), nil
			}
		}
	}
}
