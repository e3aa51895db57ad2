package events

import "quill/internal/logging"

type CommandTracer struct{}

var Command = CommandTracer{}

func (CommandTracer) Dispatch(intent string) {
	logging.Trace("command.dispatch", map[string]interface{}{"intent": intent})
}

func (CommandTracer) Request(intent, kind string) {
	logging.Trace("command.request", map[string]interface{}{"intent": intent, "kind": kind})
}

func (CommandTracer) Cancel(intent string) {
	logging.Trace("command.cancel", map[string]interface{}{"intent": intent})
}

func (CommandTracer) Resume(intent string) {
	logging.Trace("command.resume", map[string]interface{}{"intent": intent})
}

// Error is written at error level so failures land in the log even with
// tracing off.
func (CommandTracer) Error(intent string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.error", map[string]interface{}{"intent": intent, "error": err.Error()})
	logging.Error(err)
}
