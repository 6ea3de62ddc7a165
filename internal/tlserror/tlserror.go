// Package tlserror implements the spec's thread-local "last parse error"
// slot. Go has no native goroutine-local storage, so -- exactly as
// flier-goutil's internal/debug package does for its own goroutine-tagged
// log lines -- this reaches for github.com/timandy/routine, which backs a
// ThreadLocal[T] with a per-goroutine map keyed by runtime goroutine id.
package tlserror

import "github.com/timandy/routine"

// Slot holds the most recent failure reported by the calling goroutine's
// last call into the library, until that goroutine's next call overwrites
// it. Each goroutine sees only its own value.
type Slot[T any] struct {
	tls routine.ThreadLocal[*T]
}

// NewSlot returns a ready-to-use thread-local slot.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{tls: routine.NewThreadLocal[*T]()}
}

// Set records v as the calling goroutine's last value.
func (s *Slot[T]) Set(v *T) { s.tls.Set(v) }

// Get returns the calling goroutine's last recorded value, and whether one
// has been recorded at all.
func (s *Slot[T]) Get() (v *T, ok bool) {
	v = s.tls.Get()
	return v, v != nil
}

// Clear removes the calling goroutine's recorded value.
func (s *Slot[T]) Clear() { s.tls.Remove() }
