// Package devtools serves a live view of hook instances.
//
// An Inspector keeps the instances registered with it, a bounded history
// of recent render cycles and a set of WebSocket clients that receive
// every cycle as it finishes. Instances report to the inspector through
// an observer:
//
//	insp := devtools.New()
//	in := hooks.NewInstance(hooks.WithObserver(insp.Observe))
//	insp.Register(session)
//	http.ListenAndServe(":7070", insp.Router())
//
// Routes:
//
//	GET  /instances                          registered instances
//	GET  /instances/{id}                     slot snapshot of one instance
//	POST /instances/{id}/actions/{action}    run an action, body is its argument
//	GET  /cycles?limit=N                     recent cycles, oldest first
//	GET  /ws                                 cycle event stream
//	GET  /metrics                            Prometheus metrics
package devtools
