package arena

// DefaultCapacity is the backing region size used when no capacity is given.
const DefaultCapacity = 64 * 1024

// Arena is a fixed-capacity bump allocator. The zero value is unusable; use
// New. An Arena is not safe for concurrent use and is intended to be owned by
// exactly one event's synchronous phase at a time.
type Arena struct {
	buf []byte
	off int
}

// New creates an arena with the given capacity in bytes. Non-positive
// capacities fall back to DefaultCapacity.
func New(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Arena{buf: make([]byte, capacity)}
}

// Alloc reserves n bytes and returns the reserved slice. The slice aliases
// the arena's backing storage and is valid only until Reset. The returned
// slice's capacity equals n so an append can never bleed into a later
// allocation.
func (a *Arena) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrInvalidSize
	}
	if a.off+n > len(a.buf) {
		return nil, ErrArenaFull
	}
	b := a.buf[a.off : a.off+n : a.off+n]
	a.off += n
	return b, nil
}

// Copy allocates len(data) bytes and copies data into them, returning the
// arena-backed view.
func (a *Arena) Copy(data []byte) ([]byte, error) {
	b, err := a.Alloc(len(data))
	if err != nil {
		return nil, err
	}
	copy(b, data)
	return b, nil
}

// CopyString allocates len(s) bytes and copies s into them.
func (a *Arena) CopyString(s string) ([]byte, error) {
	b, err := a.Alloc(len(s))
	if err != nil {
		return nil, err
	}
	copy(b, s)
	return b, nil
}

// Reset releases every allocation in one step. Previously returned slices
// must not be used afterward.
func (a *Arena) Reset() {
	a.off = 0
}

// Len reports the number of bytes currently allocated.
func (a *Arena) Len() int {
	return a.off
}

// Cap reports the arena's total capacity.
func (a *Arena) Cap() int {
	return len(a.buf)
}

// Remaining reports how many bytes are still available.
func (a *Arena) Remaining() int {
	return len(a.buf) - a.off
}
