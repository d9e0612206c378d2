package flightplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteProgress(t *testing.T) {
	r := NewRoute("P3", "P", "B1", "14R")
	assert.Equal(t, "P3", r.Current())
	assert.False(t, r.Complete())

	assert.True(t, r.AdvanceTo("B1"))
	assert.Equal(t, "B1", r.Current())
	assert.Equal(t, []string{"B1", "14R"}, r.Remaining())

	// Segments behind the aircraft are not revisited.
	assert.False(t, r.AdvanceTo("P"))
	assert.Equal(t, "B1", r.Current())

	assert.False(t, r.AdvanceTo("Z"))

	r.CurrentSegmentIndex = len(r.Segments)
	assert.True(t, r.Complete())
	assert.Equal(t, "", r.Current())
	assert.Nil(t, r.Remaining())
}

func TestNewRouteCopies(t *testing.T) {
	segs := []string{"D2", "14R"}
	r := NewRoute(segs...)
	segs[0] = "X"
	assert.Equal(t, "D2", r.Current())
}
