package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalGetSet(t *testing.T) {
	hover := NewSignal("")
	assert.Equal(t, "", hover.Get())

	hover.Set("btn-1")
	assert.Equal(t, "btn-1", hover.Get())
}

func TestEffectRerunsOnChange(t *testing.T) {
	focus := NewSignal("")
	runs := 0

	CreateEffect(func() {
		_ = focus.Get()
		runs++
	})
	assert.Equal(t, 1, runs, "effect runs immediately on creation")

	focus.Set("field-a")
	assert.Equal(t, 2, runs)

	focus.Set("field-b")
	assert.Equal(t, 3, runs)

	// Setting the same value again should not re-run the effect.
	focus.Set("field-b")
	assert.Equal(t, 3, runs)
}

func TestComputedMemoizes(t *testing.T) {
	width := NewSignal(10)
	evals := 0
	doubled := NewComputed(func() int {
		evals++
		return width.Get() * 2
	})

	assert.Equal(t, 20, doubled.Get())
	assert.Equal(t, 20, doubled.Get())
	assert.Equal(t, 1, evals, "unchanged dependency should not force re-evaluation")

	width.Set(11)
	assert.Equal(t, 22, doubled.Get())
	assert.Equal(t, 2, evals)
}

func TestBatchCoalescesNotifications(t *testing.T) {
	a := NewSignal(1)
	b := NewSignal(2)
	runs := 0

	CreateEffect(func() {
		_ = a.Get() + b.Get()
		runs++
	})
	assert.Equal(t, 1, runs)

	Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	assert.Equal(t, 2, runs, "both changes inside Batch should trigger a single re-run")
}

func TestEffectDisposeStopsUpdates(t *testing.T) {
	s := NewSignal(0)
	runs := 0

	e := CreateEffect(func() {
		_ = s.Get()
		runs++
	})
	e.Dispose()

	s.Set(1)
	assert.Equal(t, 1, runs, "disposed effect must not re-run")
}
