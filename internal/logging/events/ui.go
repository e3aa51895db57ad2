package events

import "quill/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) MenuOpen(menu string) {
	logging.Trace("menu.open", map[string]interface{}{"menu": menu})
}

func (UITracer) MenuSelect(menu, item string) {
	logging.Trace("menu.select", map[string]interface{}{"menu": menu, "item": item})
}

func (UITracer) Overlay(name string, visible bool) {
	logging.Trace("ui.overlay", map[string]interface{}{"name": name, "visible": visible})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}
