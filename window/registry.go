package window

import "sync"

// Handle names a registered object. The low 32 bits hold the arena slot plus
// one and the high 32 bits the slot's generation, so a handle outliving its
// object never resolves to the slot's next occupant. The zero Handle is
// never issued.
type Handle uint64

func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index+1))
}

func (h Handle) index() (uint32, bool) {
	low := uint32(h)
	if low == 0 {
		return 0, false
	}
	return low - 1, true
}

func (h Handle) generation() uint32 {
	return uint32(h >> 32)
}

type registrySlot[T any] struct {
	gen   uint32
	value *T
}

// Registry is an arena of objects addressed by generation-tagged handles.
// It is safe for concurrent use.
type Registry[T any] struct {
	mu    sync.Mutex
	slots []registrySlot[T]
	free  []uint32
}

// Register stores v and returns its handle.
func (r *Registry[T]) Register(v *T) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, registrySlot[T]{})
	}
	r.slots[idx].value = v
	return makeHandle(idx, r.slots[idx].gen)
}

// Lookup returns the object h names, if it is still registered.
func (r *Registry[T]) Lookup(h Handle) (*T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slot(h)
	if !ok {
		return nil, false
	}
	return slot.value, true
}

// Release unregisters the object h names. It reports false for stale or
// unknown handles.
func (r *Registry[T]) Release(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slot(h)
	if !ok {
		return false
	}
	slot.value = nil
	slot.gen++
	idx, _ := h.index()
	r.free = append(r.free, idx)
	return true
}

// Len returns the number of registered objects.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots) - len(r.free)
}

func (r *Registry[T]) slot(h Handle) (*registrySlot[T], bool) {
	idx, ok := h.index()
	if !ok || int(idx) >= len(r.slots) {
		return nil, false
	}
	slot := &r.slots[idx]
	if slot.value == nil || slot.gen != h.generation() {
		return nil, false
	}
	return slot, true
}
