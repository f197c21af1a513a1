package client_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personaldata-backend/pkg/client"
)

type termRecorder struct {
	mu    sync.Mutex
	terms []string
}

func (r *termRecorder) record(term string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.terms = append(r.terms, term)
}

func (r *termRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.terms...)
}

func (r *termRecorder) waitFor(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := r.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d emissions, got %v", n, r.snapshot())
	return nil
}

func TestDebouncerEmitsOnlyLatestTerm(t *testing.T) {
	rec := &termRecorder{}
	d := client.NewSearchDebouncer(20*time.Millisecond, rec.record)
	defer d.Close()

	// rapid typing, only the final value should go out
	d.Input("a")
	d.Input("an")
	d.Input("ann")

	got := rec.waitFor(t, 1)
	assert.Equal(t, []string{"ann"}, got)
}

func TestDebouncerSuppressesConsecutiveDuplicates(t *testing.T) {
	rec := &termRecorder{}
	d := client.NewSearchDebouncer(20*time.Millisecond, rec.record)
	defer d.Close()

	d.Input("ann")
	rec.waitFor(t, 1)

	d.Input("ann")
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, []string{"ann"}, rec.snapshot())

	d.Input("bob")
	got := rec.waitFor(t, 2)
	assert.Equal(t, []string{"ann", "bob"}, got)
}

func TestDebouncerEmitsRepeatedTermAfterChange(t *testing.T) {
	rec := &termRecorder{}
	d := client.NewSearchDebouncer(20*time.Millisecond, rec.record)
	defer d.Close()

	d.Input("ann")
	rec.waitFor(t, 1)
	d.Input("bob")
	rec.waitFor(t, 2)
	d.Input("ann")

	got := rec.waitFor(t, 3)
	require.Equal(t, []string{"ann", "bob", "ann"}, got)
}

func TestDebouncerCloseCancelsPending(t *testing.T) {
	rec := &termRecorder{}
	d := client.NewSearchDebouncer(50*time.Millisecond, rec.record)

	d.Input("ann")
	d.Close()

	time.Sleep(120 * time.Millisecond)
	assert.Empty(t, rec.snapshot())

	// input after close is ignored
	d.Input("bob")
	time.Sleep(120 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebouncerZeroDelayFallsBackToDefault(t *testing.T) {
	d := client.NewSearchDebouncer(0, func(string) {})
	defer d.Close()
	// constructor must not panic and the debouncer must accept input
	d.Input("ann")
}
