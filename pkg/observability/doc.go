/*
Package observability provides Prometheus metrics for the expect Validator.

Metrics are fed through expect.Hooks, so any Validator can be instrumented
without the validation engine knowing about Prometheus:

	m := observability.NewMetrics()
	v := expect.New(expect.WithHooks(m.Hooks()))
	http.Handle("/metrics", m.Handler())
*/
package observability
