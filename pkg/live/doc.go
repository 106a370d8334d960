// Package live serves component trees to browsers over a websocket.
//
// Every connection gets its own host.Tree and host.Loop. The tree is
// rendered on the loop, each commit is pushed to the browser as HTML, and
// browser events are dispatched back to the tree by hydration ID:
//
//	srv := live.New(demo.App, live.WithMetrics(prometheus.DefaultGatherer))
//	http.ListenAndServe(":8080", srv.Handler())
//
// Routes:
//   - GET /         the page, with the first render inlined
//   - GET /ws       the websocket
//   - GET /healthz  liveness
//   - GET /metrics  Prometheus metrics, when WithMetrics is set
package live
