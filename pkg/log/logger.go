package log

// Logger is the interface for receiving validation events.
// A nil Logger on the validator disables event capture.
type Logger interface {
	// Log records an event. Implementations must be thread-safe.
	Log(event Event)
}

// Tee returns a Logger that sends every event to each non-nil logger in
// order. It returns nil when no logger is given and the logger itself when
// there is only one.
func Tee(loggers ...Logger) Logger {
	var t tee
	for _, l := range loggers {
		switch l := l.(type) {
		case nil:
		case tee:
			t = append(t, l...)
		default:
			t = append(t, l)
		}
	}

	switch len(t) {
	case 0:
		return nil
	case 1:
		return t[0]
	default:
		return t
	}
}

type tee []Logger

func (t tee) Log(event Event) {
	for _, l := range t {
		l.Log(event)
	}
}
