package simulation

import (
	"strings"
	"time"
)

const EventLogCapacity = 1000

type EventType string

const (
	SimulationStart      EventType = "SIMULATION_START"
	SimulationStop       EventType = "SIMULATION_STOP"
	AircraftSpawn        EventType = "AIRCRAFT_SPAWN"
	AircraftDeparture    EventType = "AIRCRAFT_DEPARTURE"
	ConflictDetected     EventType = "CONFLICT_DETECTED"
	RunwayIncursionAlert EventType = "RUNWAY_INCURSION_ALERT"
	GroundStop           EventType = "GROUND_STOP"
	EmergencyVehicle     EventType = "EMERGENCY_VEHICLE"
	WeatherHold          EventType = "WEATHER_HOLD"
	SystemTest           EventType = "SYSTEM_TEST"
)

// RandomEvents are the scenario events a tick may draw.
var RandomEvents = []EventType{RunwayIncursionAlert, GroundStop, EmergencyVehicle, WeatherHold, SystemTest}

// Activation reports whether the event counts as an RWSL activation.
func (t EventType) Activation() bool {
	return strings.Contains(string(t), "CONFLICT") || strings.Contains(string(t), "ALERT")
}

type Event struct {
	SimTime     float64   `json:"sim_time"`
	WallTime    time.Time `json:"wall_time"`
	Type        EventType `json:"type"`
	Description string    `json:"description"`
}

// EventLog is a fixed-capacity FIFO; once full, each Append drops the
// oldest event.
type EventLog struct {
	buf   []Event
	start int
	n     int
}

func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = EventLogCapacity
	}
	return &EventLog{buf: make([]Event, capacity)}
}

func (l *EventLog) Append(e Event) {
	if l.n < len(l.buf) {
		l.buf[(l.start+l.n)%len(l.buf)] = e
		l.n++
		return
	}
	l.buf[l.start] = e
	l.start = (l.start + 1) % len(l.buf)
}

func (l *EventLog) Len() int {
	return l.n
}

func (l *EventLog) Cap() int {
	return len(l.buf)
}

// All returns every retained event, oldest first.
func (l *EventLog) All() []Event {
	return l.Recent(l.n)
}

// Recent returns up to the n newest events, oldest first.
func (l *EventLog) Recent(n int) []Event {
	n = min(max(n, 0), l.n)
	out := make([]Event, n)
	for i := range out {
		out[i] = l.buf[(l.start+l.n-n+i)%len(l.buf)]
	}
	return out
}

func (l *EventLog) Histogram() map[EventType]int {
	h := make(map[EventType]int)
	l.each(func(e *Event) { h[e.Type]++ })
	return h
}

func (l *EventLog) Count(t EventType) int {
	c := 0
	l.each(func(e *Event) {
		if e.Type == t {
			c++
		}
	})
	return c
}

func (l *EventLog) Activations() int {
	c := 0
	l.each(func(e *Event) {
		if e.Type.Activation() {
			c++
		}
	})
	return c
}

func (l *EventLog) each(f func(*Event)) {
	for i := 0; i < l.n; i++ {
		f(&l.buf[(l.start+i)%len(l.buf)])
	}
}
