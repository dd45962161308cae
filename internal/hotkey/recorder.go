package hotkey

import "sync"

// Recorder captures a combo from live key events. Keys are collected in
// press order; the combo is finished once every key has been released.
type Recorder struct {
	mu    sync.Mutex
	order []string
	held  keySet
	combo []string
	done  bool
}

// NewRecorder creates a recorder ready for the first key-down.
func NewRecorder() *Recorder {
	return &Recorder{held: make(keySet)}
}

// Press records a key-down. Repeated key-downs for a held key are ignored.
func (r *Recorder) Press(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := NormalizeKey(key)
	if r.done || k == "" || r.held.has(k) {
		return
	}
	r.held[k] = struct{}{}
	r.order = append(r.order, Capitalize(key))
	r.combo = append([]string(nil), r.order...)
}

// Release records a key-up and reports whether recording has finished.
func (r *Recorder) Release(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := NormalizeKey(key)
	if r.done || !r.held.has(k) {
		return r.done
	}
	delete(r.held, k)
	for i, o := range r.order {
		if NormalizeKey(o) == k {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if len(r.held) == 0 {
		r.done = true
	}
	return r.done
}

// Handle dispatches one event and reports whether recording has finished.
func (r *Recorder) Handle(ev Event) bool {
	if ev.Down {
		r.Press(ev.Key)
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.done
	}
	return r.Release(ev.Key)
}

// Combo returns the recorded keys as they stood at the last key-down.
func (r *Recorder) Combo() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.combo...)
}

// Done reports whether every recorded key has been released.
func (r *Recorder) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}
