/*
Package observability turns engine lifecycle events into Prometheus metrics and
structured logs.

Both are plain domain.LifecycleHooks and can be combined with domain.ChainHooks:

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := domain.ChainHooks(metrics.Hooks(), observability.LogHooks(logger))
	eng, err := parley.New(reg, parley.WithLifecycleHooks(hooks))
*/
package observability
