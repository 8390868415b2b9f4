package diag

import (
	"encoding/json"
	"io"
)

// ReadLog parses a newline delimited JSON audit log, calling handler
// for each event.
func ReadLog(r io.Reader, handler func(ev Event)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var ev Event
		if err := decoder.Decode(&ev); err != nil {
			return err
		}
		handler(ev)
	}
	return nil
}

// Report holds statistics about the recorded audit events.
type Report struct {
	Events int `json:"events"`

	Suppressions    StrCounter `json:"security_suppressions,omitempty"`
	DeniedLookups   StrCounter `json:"denied_path_lookups,omitempty"`
	ProviderErrors  StrCounter `json:"provider_errors,omitempty"`
	AmbiguousPaths  StrCounter `json:"ambiguous_paths,omitempty"`
	SkippedDefaults StrCounter `json:"skipped_defaults,omitempty"`
	UnknownKinds    StrCounter `json:"unknown_event_kinds,omitempty"`
}

// Update folds one event into the report.
func (r *Report) Update(ev Event) {
	r.Events++

	switch ev.Kind {
	case SecuritySuppression:
		r.Suppressions.Increment(ev.Name)
	case PathLookupDenied:
		r.DeniedLookups.Increment(ev.Name)
	case ProviderError:
		r.ProviderErrors.Increment(ev.Name)
	case AmbiguousPath:
		r.AmbiguousPaths.Increment(ev.Name)
	case DefaultSkipped:
		r.SkippedDefaults.Increment(ev.Name)
	default:
		r.UnknownKinds.Increment(string(ev.Kind))
	}
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times the key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implements a custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}
