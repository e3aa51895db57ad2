package events

import "quill/internal/logging"

type DocumentTracer struct{}

var Document = DocumentTracer{}

func (DocumentTracer) Opened(path, mode string) {
	logging.Trace("document.opened", map[string]interface{}{"path": path, "mode": mode})
}

func (DocumentTracer) Saved(path string, bytes int) {
	logging.Trace("document.saved", map[string]interface{}{"path": path, "bytes": bytes})
}

func (DocumentTracer) Closed() {
	logging.Trace("document.closed", nil)
}

func (DocumentTracer) UnknownExtension(path string) {
	logging.Trace("document.unknown-extension", map[string]interface{}{"path": path})
}
