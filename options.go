package respond

// Options is the per-call options bag accepted by every helper. Zero values
// mean "not supplied": an empty Message or StatusCode falls back to the
// helper's preset, a nil Data/Errors/Meta leaves the matching envelope
// field out of the body entirely. Non-nil payloads are always emitted, even
// when they serialize to an empty object or a falsy scalar.
//
// An Options value lives for one send and is never retained.
type Options struct {
	Message    string
	StatusCode int
	Data       any
	Errors     any
	Meta       any
	Headers    map[string]string
}

// first collapses a variadic options slice into the single bag the send
// routine consumes. Helpers accept ...Options purely so call sites can omit
// the argument; extra bags beyond the first are ignored.
func first(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[0]
}

// withPreset fills the helper's preset status code and message into the
// bag unless the caller already supplied their own.
func (o Options) withPreset(statusCode int, message string) Options {
	if o.StatusCode == 0 {
		o.StatusCode = statusCode
	}
	if o.Message == "" {
		o.Message = message
	}
	return o
}
