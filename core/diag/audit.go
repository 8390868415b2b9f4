package diag

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// EventKind classifies audit events.
type EventKind string

const (
	// SecuritySuppression records a command hidden because its
	// defining trust mode outranks the session.
	SecuritySuppression EventKind = "security_suppression"
	// PathLookupDenied records a path-like lookup rejected by the
	// allow list.
	PathLookupDenied EventKind = "path_lookup_denied"
	// ProviderError records a provider failure that resolution
	// swallowed and treated as no match.
	ProviderError EventKind = "provider_error"
	// AmbiguousPath records a relative path lookup that matched more
	// than one file and was discarded.
	AmbiguousPath EventKind = "ambiguous_path"
	// DefaultSkipped records a parameter left unbound because its
	// validator swallowed a failure instead of aborting the bind.
	DefaultSkipped EventKind = "default_skipped"
)

// Event is one audit record. Events capture behavior that callers
// cannot observe through return values.
type Event struct {
	TimestampMicros int64     `json:"timestamp_micros"`
	Kind            EventKind `json:"kind"`
	// Name is the command or parameter name involved.
	Name string `json:"name,omitempty"`
	// Stage is the resolution stage the event fired in, when relevant.
	Stage  string `json:"stage,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Recorder consumes audit events. Recording must never disturb
// resolution, so implementations should swallow their own failures.
type Recorder interface {
	Record(ev Event)
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(ev Event)

// Record implements Recorder.Record.
func (f RecorderFunc) Record(ev Event) {
	f(ev)
}

// NopRecorder drops all events.
func NopRecorder() Recorder {
	return RecorderFunc(func(Event) {})
}

type jsonLines struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// NewJSONLines returns a Recorder that appends one JSON object per
// line to out. Events without a timestamp are stamped as they arrive.
func NewJSONLines(out io.Writer) Recorder {
	return &jsonLines{out: out, now: time.Now}
}

func (j *jsonLines) Record(ev Event) {
	if ev.TimestampMicros == 0 {
		ev.TimestampMicros = j.now().UnixMicro()
	}

	buf, err := json.Marshal(ev)
	if err != nil {
		return
	}
	buf = append(buf, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	j.out.Write(buf)
}
