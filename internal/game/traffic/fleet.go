package traffic

import (
	"github.com/brunoga/deep"

	"rwsl-simulator/internal/game/aircraft"
	"rwsl-simulator/internal/game/airport"
	"rwsl-simulator/pkg/types"
)

// Fleet is the set of active aircraft, kept in admission order. Aircraft
// are addressed by their stable ID; removal compacts the slice in place
// so iteration order is preserved and nothing is deleted mid-iteration.
type Fleet struct {
	Aircraft []aircraft.Aircraft
}

func (f *Fleet) Len() int {
	return len(f.Aircraft)
}

func (f *Fleet) Add(ac aircraft.Aircraft) {
	f.Aircraft = append(f.Aircraft, ac)
}

// Get returns a pointer into the fleet; it is invalidated by the next
// Add or removal.
func (f *Fleet) Get(id types.AircraftID) (*aircraft.Aircraft, bool) {
	for i := range f.Aircraft {
		if f.Aircraft[i].ID == id {
			return &f.Aircraft[i], true
		}
	}
	return nil, false
}

// RemoveOutOfBounds retires every aircraft outside b and returns them.
func (f *Fleet) RemoveOutOfBounds(b airport.Bounds) []aircraft.Aircraft {
	var retired []aircraft.Aircraft
	n := 0
	for _, ac := range f.Aircraft {
		if b.Contains(ac.Position) {
			f.Aircraft[n] = ac
			n++
		} else {
			retired = append(retired, ac)
		}
	}
	clear(f.Aircraft[n:])
	f.Aircraft = f.Aircraft[:n]
	return retired
}

// ScaleSpeeds multiplies every aircraft's current speed by s.
func (f *Fleet) ScaleSpeeds(s float64) {
	for i := range f.Aircraft {
		f.Aircraft[i].SetSpeed(f.Aircraft[i].Speed * s)
	}
}

// Clone returns a deep copy that shares no route storage with f.
func (f *Fleet) Clone() Fleet {
	return deep.MustCopy(*f)
}
