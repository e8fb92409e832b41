package stagemap

import "sync"

// ChangeHook is called with every new Snapshot. Hooks run on the player
// loop and must not block or call back into the Player synchronously.
type ChangeHook func(Snapshot)

// Hooks provides access to change notifications.
type Hooks interface {
	// OnChange registers a callback for every published snapshot
	OnChange(ChangeHook) (unsubscribe func())
}

// hooks manages change callbacks.
type hooks struct {
	mu       sync.RWMutex
	nextID   int
	onChange map[int]ChangeHook
	order    []int
}

func newHooks() *hooks {
	return &hooks{onChange: make(map[int]ChangeHook)}
}

// OnChange registers a callback for published snapshots.
func (p *player) OnChange(fn ChangeHook) (unsubscribe func()) {
	return p.hooks.add(fn)
}

func (h *hooks) add(fn ChangeHook) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.onChange[id] = fn
	h.order = append(h.order, id)
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.onChange, id)
		for i, v := range h.order {
			if v == id {
				h.order = append(h.order[:i:i], h.order[i+1:]...)
				break
			}
		}
	}
}

// trigger calls every hook in registration order.
func (h *hooks) trigger(s Snapshot) {
	h.mu.RLock()
	fns := make([]ChangeHook, 0, len(h.order))
	for _, id := range h.order {
		fns = append(fns, h.onChange[id])
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(s)
	}
}
