package respond

import "encoding/json"

// Response categories. Every envelope carries exactly one of these in its
// status field; the named helpers pick the right one for the caller.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Default messages used when the caller supplies none.
const (
	defaultSuccessMessage = "Success"
	defaultErrorMessage   = "Error"
)

// Envelope is the standard wire shape for every JSON response. The payload
// fields (Data, Errors, Meta) are emitted only when the caller supplied
// them; a nil field is absent from the body rather than serialized as null.
type Envelope struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
	Meta      any    `json:"meta,omitempty"`
	Timestamp string `json:"timestamp"`
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
