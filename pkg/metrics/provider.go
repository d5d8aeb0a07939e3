package metrics

type newRelicContextKey struct{}

// NewRelicContextKey is the context key under which a *newrelic.Application
// is made available to the metrics utilities. When no application is set,
// all recording functions are no-ops.
var NewRelicContextKey = newRelicContextKey{}
