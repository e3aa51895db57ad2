package events

import "quill/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Quit(dirty bool) {
	logging.Trace("app.quit", map[string]interface{}{"dirty": dirty})
}
