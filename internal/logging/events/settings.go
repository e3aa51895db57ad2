package events

import "quill/internal/logging"

type SettingsTracer struct{}

var Settings = SettingsTracer{}

func (SettingsTracer) Loaded(path string) {
	logging.Trace("settings.load", map[string]interface{}{"path": path})
}

func (SettingsTracer) Updated(field, value string) {
	logging.Trace("settings.update", map[string]interface{}{"field": field, "value": value})
}

func (SettingsTracer) Initialized(path string) {
	logging.Info("settings initialized", "path", path)
}
