package tlserror_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arenadoc/cdom/internal/tlserror"
)

type fakeError struct{ msg string }

func TestSlotIsPerGoroutine(t *testing.T) {
	slot := tlserror.NewSlot[fakeError]()

	_, ok := slot.Get()
	assert.False(t, ok)

	slot.Set(&fakeError{msg: "main"})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, ok := slot.Get()
		assert.False(t, ok, "a fresh goroutine must not see another goroutine's slot")

		slot.Set(&fakeError{msg: "other"})
		v, ok := slot.Get()
		assert.True(t, ok)
		assert.Equal(t, "other", v.msg)
	}()
	wg.Wait()

	v, ok := slot.Get()
	assert.True(t, ok)
	assert.Equal(t, "main", v.msg, "the main goroutine's slot must be unaffected by the other goroutine")
}

func TestSlotClear(t *testing.T) {
	slot := tlserror.NewSlot[fakeError]()
	slot.Set(&fakeError{msg: "x"})
	slot.Clear()

	_, ok := slot.Get()
	assert.False(t, ok)
}
