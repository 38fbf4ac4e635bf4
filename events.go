package nova2k

import "fmt"

// Severity ranks an Event.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a structured diagnostic about one row of the input.
type Event struct {
	// Row is the 1-based index of the row in its input stream, 0 when the
	// event is not about a row.
	Row      int
	Severity Severity
	Message  string
	// Raw holds the offending row cells, if any.
	Raw []string
}

func (e Event) String() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("%s: row %d: %s", e.Severity, e.Row, e.Message)
}

// EventSink receives the events of the conversion components.
//
// Components call Emit sequentially, implementations need not be safe for
// concurrent use.
type EventSink interface {
	Emit(Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(Event)

func (f EventSinkFunc) Emit(e Event) { f(e) }

// Discard is an EventSink that drops every event.
var Discard EventSink = EventSinkFunc(func(Event) {})

// Recorder is an EventSink that keeps all events in memory.
// Its zero value is ready to use.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(e Event) { r.Events = append(r.Events, e) }

// Count returns the number of recorded events of severity s.
func (r *Recorder) Count(s Severity) int {
	n := 0
	for _, e := range r.Events {
		if e.Severity == s {
			n++
		}
	}
	return n
}

// emitter adds a few helpers on top of a sink.
type emitter struct {
	sink EventSink
}

func (e emitter) emit(row int, s Severity, raw []string, format string, args ...any) {
	if e.sink == nil {
		return
	}
	e.sink.Emit(Event{Row: row, Severity: s, Message: fmt.Sprintf(format, args...), Raw: raw})
}
