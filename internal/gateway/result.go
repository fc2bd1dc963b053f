package gateway

import (
	"encoding/json"
	"fmt"
)

// Result is what a remote call produced. It never represents a Go error:
// transport failures are carried in Err so callers can render them.
type Result struct {
	// Value is the decoded JSON body, nil when the body is not JSON
	Value any
	// Raw is the body as received
	Raw string
	// Err is set when the request itself failed
	Err string
}

// Failed reports whether the request failed before a body was read
func (r Result) Failed() bool {
	return r.Err != ""
}

// Object returns the body as a JSON object
func (r Result) Object() (map[string]any, bool) {
	obj, ok := r.Value.(map[string]any)
	return obj, ok
}

// Field returns the first candidate field that is present and non-empty in
// the JSON object body, falling back to String.
func (r Result) Field(names ...string) string {
	obj, ok := r.Object()
	if ok {
		for _, name := range names {
			v, present := obj[name]
			if !present || v == nil || v == "" {
				continue
			}
			if s, isStr := v.(string); isStr {
				return s
			}
			return fmt.Sprint(v)
		}
	}
	return r.String()
}

// String renders the result for a user: the JSON body re-encoded, the raw
// body, or the error.
func (r Result) String() string {
	if r.Failed() {
		return "Error: " + r.Err
	}
	if r.Value != nil {
		data, err := json.Marshal(r.Value)
		if err == nil {
			return string(data)
		}
	}
	return r.Raw
}

// Indent renders the JSON body indented, for code blocks
func (r Result) Indent() string {
	if r.Failed() {
		data, _ := json.MarshalIndent(map[string]string{"error": r.Err}, "", "  ")
		return string(data)
	}
	if r.Value == nil {
		return r.Raw
	}
	data, err := json.MarshalIndent(r.Value, "", "  ")
	if err != nil {
		return r.Raw
	}
	return string(data)
}
