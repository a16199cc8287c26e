package e2e

// CallOption adjusts a single invocation without touching client defaults.
type CallOption func(*callOptions)

type callOptions struct {
	stop    []string
	hasStop bool
	params  *Payload // per-call parameter overrides, insertion ordered
}

func newCallOptions(opts []CallOption) callOptions {
	co := callOptions{params: NewPayload()}
	for _, opt := range opts {
		opt(&co)
	}
	return co
}

// WithStop sets the stop sequences for this call, replacing any client
// default. Passing no sequences removes the stop field from the payload.
func WithStop(stop ...string) CallOption {
	return func(co *callOptions) {
		co.stop = stop
		co.hasStop = true
	}
}

// WithTemperature overrides the sampling temperature for this call.
func WithTemperature(t float64) CallOption {
	return WithParam("temperature", t)
}

// WithMaxTokens overrides the completion token limit for this call.
func WithMaxTokens(n int) CallOption {
	return WithParam("max_tokens", n)
}

// WithTopP overrides the nucleus sampling parameter for this call.
func WithTopP(p float64) CallOption {
	return WithParam("top_p", p)
}

// WithParam sets a named request parameter for this call. The known sampling
// keys ("temperature", "max_tokens", "top_p") override the client defaults;
// any other key is passed through to the endpoint verbatim, unless it would
// collide with a field the client already owns (prompt, model, stop).
func WithParam(key string, value any) CallOption {
	return func(co *callOptions) {
		co.params.Set(key, value)
	}
}
