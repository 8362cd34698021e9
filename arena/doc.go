// Package arena provides bump-allocated scratch regions scoped to a single
// event's synchronous processing phase.
//
// An Arena reserves a fixed-capacity byte region up front. Allocations advance
// a single offset and are released together by Reset in one O(1) operation;
// there is no per-allocation free. Slices returned by Alloc and Copy alias the
// arena's backing storage and are only valid until Reset.
//
// An Arena belongs to exactly one event at a time and is never shared across
// goroutines, so it carries no locking. Use a Pool to recycle arenas across
// events without reallocating backing storage:
//
//	pool := arena.NewPool(64 * 1024)
//	a := pool.Get()
//	defer pool.Put(a)
//
//	view, err := a.Copy(raw)
//	if err != nil {
//	    // capacity exhausted: drop this event, report upstream
//	}
//
// Exhaustion is fatal for the event being processed, never silently truncated:
// Alloc and Copy return ErrArenaFull and the caller is expected to abandon the
// event and surface the error.
package arena
